package bot

// User-facing copy stays Persian to match the audience of the shop.

const (
	textHelp = `📋 **دستورات موجود:**

🔹 **دستورات عمومی:**
• /start - شروع کار با ربات
• /help - نمایش این راهنما

🔹 **دستورات ادمین:**
• /admin - ورود به پنل ادمین (با منوی تعاملی)

💡 **نکته:** برای استفاده از پنل ادمین، ابتدا /admin را اجرا کنید.`

	textMainMenu = "🎯 **منوی اصلی**\n\nاز گزینه‌های زیر یکی را انتخاب کنید:"

	textAskPassword = "🔐 **ورود به پنل ادمین**\n\nلطفاً رمز عبور ادمین را وارد کنید:"

	textWrongPassword = "❌ رمز عبور اشتباه است! دوباره تلاش کنید."

	textSessionExpired = "❌ Session منقضی شده! دوباره وارد شوید."

	textRegistrationStart = "📝 **ثبت نام سریع**\n\n👤 لطفاً نام و نام خانوادگی خود را در یک پیام ارسال کنید:\n\nمثال: علی احمدی"

	textNameSplitError = "❌ لطفاً نام و نام خانوادگی را با فاصله جدا کنید:\n\nمثال: علی احمدی"

	textRegistrationCancelled = "❌ ثبت نام لغو شد."

	textAskCity = "🏙️ **شهر (اختیاری):**\nشهر خود را ارسال کنید یا Enter بزنید تا رد شود:"

	textNotRegistered = "❌ شما هنوز ثبت نام نکرده‌اید. ابتدا ثبت نام کنید."

	textWallet = "👛 **کیف پول**\n\nموجودی و تراکنش‌ها به‌زودی نمایش داده می‌شود."

	textNoOrders = "🧾 **سفارشات**\n\nهنوز سفارشی ثبت نکرده‌اید."

	textProductNotFound = "❌ محصول یافت نشد!"

	textGenericStorageError = "❌ خطا در انجام عملیات. لطفاً دوباره تلاش کنید."

	textBroadcastPrompt = "📢 **ارسال پیام به همه کاربران**\n\nلطفاً پیام خود را ارسال کنید:"

	textLogout = "👋 **خروج موفق!** از پنل ادمین خارج شدید."

	textDisabledButton = "⚠️ این دکمه در حال حاضر غیرفعال است"

	textPhotoAck = "📸 عکس دریافت شد!"

	textInvalidPrice = "❌ لطفاً قیمت معتبر وارد کنید (مثال: 50000)"

	textPriceEditPrompt = "💰 **ویرایش قیمت محصول**\n\nقیمت جدید را به تومان ارسال کنید:"

	textNameEditPrompt = "✏️ **ویرایش نام محصول**\n\nنام جدید را ارسال کنید:"

	textDescEditPrompt = "📝 **ویرایش توضیحات محصول**\n\nتوضیحات جدید را ارسال کنید:"

	textAddImagePrompt = "🖼️ **افزودن عکس جدید به محصول**\n\nعکس جدید را ارسال کنید:"

	textEditProfileMenu = "✏️ **ویرایش پروفایل**\n\nکدام فیلد را می‌خواهید ویرایش کنید؟"
)

// Canned free-text replies, one picked pseudorandomly when no keyword
// matches.
var fallbackReplies = []string{
	"🤔 جالب! بیشتر توضیح بدید.",
	"😊 متوجه شدم. چیز دیگه‌ای هم هست؟",
	"👍 خوبه! سوال دیگه‌ای دارید؟",
	"💭 عالی! من اینجا هستم تا کمکتون کنم.",
}

// Keyword intent lists, checked in order; substring containment, first
// match wins.
var (
	greetingWords = []string{"سلام", "hello", "hi"}
	farewellWords = []string{"خداحافظ", "bye", "goodbye"}
	moodWords     = []string{"چطوری", "حال", "چطور"}
	thanksWords   = []string{"ممنون", "تشکر", "thanks"}
)

const (
	replyGreeting = "👋 سلام! چطور می‌تونم کمکتون کنم؟"
	replyFarewell = "👋 خداحافظ! امیدوارم دوباره ببینمتون."
	replyMood     = "😊 من خوبم! ممنون که پرسیدید. شما چطورید؟"
	replyThanks   = "😊 خواهش می‌کنم! خوشحالم که تونستم کمکتون کنم."
)

var profileFieldNames = map[string]string{
	"phone":      "شماره تلفن",
	"first_name": "نام",
	"last_name":  "نام خانوادگی",
	"city":       "شهر",
}

var productFieldNames = map[string]string{
	"name":        "نام",
	"price":       "قیمت",
	"image_url":   "عکس",
	"description": "توضیحات",
}

var orderStatusNames = map[string]string{
	"pending":  "⏳ در انتظار",
	"approved": "✅ تایید شده",
	"rejected": "❌ رد شده",
}
