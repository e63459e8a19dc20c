package bot

import (
	"fmt"

	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/core/telegram/keyboard"
	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"

	tele "gopkg.in/telebot.v4"
)

// handlePaymentScreenshot turns the awaited photo into a pending order. On
// a storage failure the purchase state survives so the user can resend.
func (a *App) handlePaymentScreenshot(c tele.Context, st dialog.Purchase, ref models.PhotoRef) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	orderID, err := a.orders.Place(ctx, userID, st.ProductID, st.Price, ref.FileID)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	a.dialogs.Clear(userID)

	text := fmt.Sprintf(
		"✅ **سفارش شما ثبت شد!**\n\n🧾 شماره سفارش: #%d\n💰 مبلغ: %s تومان\n\n⏳ پس از بررسی پرداخت توسط ادمین، نتیجه به شما اطلاع داده می‌شود.",
		orderID, FormatPrice(st.Price),
	)
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🧾 مشاهده سفارشات", Unique: cbMenuOrders}},
		[]keyboard.InlineBtn{{Text: "🔙 بازگشت به منوی اصلی", Unique: cbMenuMain}},
	)
	return tghelpers.SendMD(c, text, markup)
}
