package bot

import (
	"errors"
	"fmt"

	"bazaarbot/core/telegram/callbacks"
	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/core/telegram/keyboard"
	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

const pendingOrdersPerPage = 10

func (a *App) cbAdminOrders(c tele.Context) error {
	return a.renderOrdersPage(c, 1)
}

func (a *App) cbAdminOrdersPage(c tele.Context) error {
	page, err := callbacks.PayloadInt(c)
	if err != nil {
		page = 1
	}
	return a.renderOrdersPage(c, page)
}

func (a *App) renderOrdersPage(c tele.Context, page int) error {
	ctx := tghelpers.BuildContext(c)

	pg, err := a.orders.PaginatePending(ctx, page, pendingOrdersPerPage)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, adminBackMenu())
	}
	if pg.TotalCount == 0 {
		return a.renderPanel(c, "🧾 **سفارش‌های در انتظار**\n\nسفارش در انتظار بررسی وجود ندارد.", adminBackMenu())
	}

	text := fmt.Sprintf("🧾 **سفارش‌های در انتظار** (%d سفارش، صفحه %d از %d)\n\nبرای بررسی روی سفارش بزنید:",
		pg.TotalCount, pg.CurrentPage, pg.TotalPages)

	var rows [][]keyboard.InlineBtn
	for _, o := range pg.Items {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("#%d — %s — %s تومان", o.ID, o.ProductName, FormatPrice(o.Price)),
			Unique: cbAdminViewOrder,
			Data:   fmt.Sprint(o.ID),
		}})
	}
	rows = append(rows, pageNav(cbAdminOrdersPage,
		fmt.Sprint(page-1), fmt.Sprint(page+1),
		pg.HasPrev(), pg.HasNext(),
		"⬅️ قبلی", "بعدی ➡️",
	))
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت به منو", Unique: cbAdminMenu}})

	return a.renderPanel(c, text, keyboard.InlineButtonsRows(rows...))
}

func (a *App) cbAdminViewOrder(c tele.Context) error {
	orderID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	}
	ctx := tghelpers.BuildContext(c)

	order, err := a.orders.Order(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	}
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, backToOrdersMenu())
	}

	text := fmt.Sprintf(
		"🧾 **سفارش #%d**\n\n"+
			"👤 کاربر: `%d`\n"+
			"📦 محصول: %s\n"+
			"💰 مبلغ: %s تومان\n"+
			"📌 وضعیت: %s\n"+
			"📅 تاریخ ثبت: %s",
		order.ID,
		order.UserID,
		order.ProductName,
		FormatPrice(order.Price),
		orderStatusNames[string(order.Status)],
		order.CreatedAt.Format("2006/01/02 15:04"),
	)

	id := fmt.Sprint(order.ID)
	var rows [][]keyboard.InlineBtn
	if order.ScreenshotFileID.Valid && order.ScreenshotFileID.String != "" {
		rows = append(rows, []keyboard.InlineBtn{{Text: "📸 مشاهده رسید پرداخت", Unique: cbAdminViewOrderSS, Data: id}})
	}
	if order.Status == models.OrderPending {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "✅ تایید", Unique: cbAdminApproveOrder, Data: id},
			{Text: "❌ رد", Unique: cbAdminRejectOrder, Data: id},
		})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت", Unique: cbAdminOrders}})

	return a.renderPanel(c, text, keyboard.InlineButtonsRows(rows...))
}

func (a *App) cbAdminViewOrderSS(c tele.Context) error {
	orderID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	}
	ctx := tghelpers.BuildContext(c)

	order, err := a.orders.Order(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	}
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textGenericStorageError})
	}
	if !order.ScreenshotFileID.Valid || order.ScreenshotFileID.String == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ رسیدی برای این سفارش ثبت نشده!"})
	}

	// The panel stays put; the receipt arrives as its own message.
	photo := &tele.Photo{
		File:    tele.File{FileID: order.ScreenshotFileID.String},
		Caption: fmt.Sprintf("📸 رسید پرداخت سفارش #%d", order.ID),
	}
	_, err = c.Bot().Send(c.Recipient(), photo)
	return err
}

func (a *App) cbAdminApproveOrder(c tele.Context) error {
	return a.decideOrder(c, models.OrderApproved)
}

func (a *App) cbAdminRejectOrder(c tele.Context) error {
	return a.decideOrder(c, models.OrderRejected)
}

func (a *App) decideOrder(c tele.Context, status models.OrderStatus) error {
	orderID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	}
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID

	var (
		order *models.Order
		done  string
	)
	if status == models.OrderApproved {
		order, err = a.orders.Approve(ctx, orderID, adminID)
		done = fmt.Sprintf("✅ سفارش #%d تایید شد.", orderID)
	} else {
		order, err = a.orders.Reject(ctx, orderID, adminID)
		done = fmt.Sprintf("❌ سفارش #%d رد شد.", orderID)
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!"})
	case errors.Is(err, storage.ErrOrderDecided):
		return c.Respond(&tele.CallbackResponse{Text: "⚠️ این سفارش قبلاً تعیین تکلیف شده است"})
	case err != nil:
		return c.Respond(&tele.CallbackResponse{Text: textGenericStorageError})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: done})
	text := fmt.Sprintf("%s\n\n📦 محصول: %s\n👤 کاربر: `%d`", done, order.ProductName, order.UserID)
	return a.renderPanel(c, text, backToOrdersMenu())
}
