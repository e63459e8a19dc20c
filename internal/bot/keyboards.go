package bot

import (
	"fmt"

	"bazaarbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "👤 پروفایل", Unique: cbMenuProfile},
			{Text: "🛍️ محصولات", Unique: cbMenuProducts},
		},
		[]keyboard.InlineBtn{
			{Text: "👛 کیف پول", Unique: cbMenuWallet},
			{Text: "🧾 سفارشات", Unique: cbMenuOrders},
		},
	)
}

func registrationMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📝 ثبت نام", Unique: cbStartRegistration},
	})
}

func userBackMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 بازگشت به منوی اصلی", Unique: cbMenuMain},
	})
}

func adminMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📊 آمار", Unique: cbAdminStats},
			{Text: "👥 کاربران", Unique: cbAdminUsers},
		},
		[]keyboard.InlineBtn{
			{Text: "🛍️ محصولات", Unique: cbAdminProducts},
			{Text: "🧾 سفارش‌ها", Unique: cbAdminOrders},
		},
		[]keyboard.InlineBtn{
			{Text: "📢 پیام همگانی", Unique: cbAdminBroadcast},
			{Text: "🔐 Session", Unique: cbAdminSession},
		},
		[]keyboard.InlineBtn{
			{Text: "🔄 تازه‌سازی", Unique: cbAdminRefresh},
			{Text: "🚪 خروج", Unique: cbAdminLogout},
		},
	)
}

func adminBackMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 بازگشت به منو", Unique: cbAdminMenu},
	})
}

func productsAdminMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "➕ افزودن محصول", Unique: cbAddProduct},
			{Text: "📋 لیست محصولات", Unique: cbListProducts},
		},
		[]keyboard.InlineBtn{
			{Text: "🔙 بازگشت", Unique: cbAdminMenu},
		},
	)
}

func productEditMenu(productID int64) *tele.ReplyMarkup {
	id := fmt.Sprint(productID)
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✏️ ویرایش نام", Unique: cbEditProductName, Data: id},
			{Text: "💰 ویرایش قیمت", Unique: cbEditProductPrice, Data: id},
		},
		[]keyboard.InlineBtn{
			{Text: "🖼️ افزودن عکس", Unique: cbAddProductImage, Data: id},
			{Text: "📝 ویرایش توضیحات", Unique: cbEditProductDesc, Data: id},
		},
		[]keyboard.InlineBtn{
			{Text: "🖼️ مدیریت عکس‌ها", Unique: cbManageImages, Data: id},
			{Text: "🗑️ حذف محصول", Unique: cbDeleteProduct, Data: id},
		},
		[]keyboard.InlineBtn{
			{Text: "🔙 بازگشت", Unique: cbListProducts},
		},
	)
}

func profileEditMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📱 شماره تلفن", Unique: cbEditPhone},
			{Text: "👤 نام", Unique: cbEditFirstName},
		},
		[]keyboard.InlineBtn{
			{Text: "👥 نام خانوادگی", Unique: cbEditLastName},
			{Text: "🏙️ شهر", Unique: cbEditCity},
		},
		[]keyboard.InlineBtn{
			{Text: "🔙 بازگشت", Unique: cbMenuMain},
		},
	)
}

func cancelRegistrationRow() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ لغو", Unique: cbCancelRegistration},
	})
}

func skipCancelRow(skipUnique string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "⏭️ رد کردن", Unique: skipUnique},
		{Text: "❌ لغو", Unique: cbCancelRegistration},
	})
}

func productStepCancelRow() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ لغو", Unique: cbAdminProducts},
	})
}

func productStepSkipRow(skipUnique string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "⏭️ رد کردن", Unique: skipUnique},
		{Text: "❌ لغو", Unique: cbAdminProducts},
	})
}

func manageProductCancelRow(productID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ لغو", Unique: cbManageProduct, Data: fmt.Sprint(productID)},
	})
}

func backToOrdersMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 بازگشت", Unique: cbAdminOrders},
	})
}
