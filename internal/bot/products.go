package bot

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bazaarbot/core/telegram/callbacks"
	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/core/telegram/keyboard"
	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

const (
	userProductsPerPage = 5
	galleryPerPage      = 1
)

func nullOr(ns sql.NullString, def string) string {
	if ns.Valid && ns.String != "" {
		return ns.String
	}
	return def
}

func (a *App) cbMenuMain(c tele.Context) error {
	_, err := editOrResend(c, textMainMenu, mainMenu())
	return err
}

func (a *App) cbMenuWallet(c tele.Context) error {
	_, err := editOrResend(c, textWallet, userBackMenu())
	return err
}

func (a *App) cbMenuProfile(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	user, err := tghelpers.CurrentUser[*models.User](ctx, a.users, userID)
	if errors.Is(err, storage.ErrNotFound) {
		_, err := editOrResend(c, textNotRegistered, registrationMenu())
		return err
	}
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if !user.IsRegistered {
		_, err := editOrResend(c, textNotRegistered, registrationMenu())
		return err
	}

	text := fmt.Sprintf(
		"👤 **پروفایل شما**\n\n"+
			"👤 نام: %s %s\n"+
			"🆔 نام کاربری: @%s\n"+
			"📱 شماره تلفن: %s\n"+
			"🏙️ شهر: %s\n"+
			"📅 تاریخ عضویت: %s\n"+
			"💬 تعداد پیام‌ها: %d",
		nullOr(user.FirstName, "-"),
		nullOr(user.LastName, "-"),
		nullOr(user.Username, "ندارد"),
		nullOr(user.Phone, "ثبت نشده"),
		nullOr(user.City, "ثبت نشده"),
		user.JoinDate.Format("2006/01/02"),
		user.MessageCount,
	)
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "✏️ ویرایش پروفایل", Unique: cbEditProfile}},
		[]keyboard.InlineBtn{{Text: "🔙 بازگشت به منوی اصلی", Unique: cbMenuMain}},
	)
	_, err = editOrResend(c, text, markup)
	return err
}

func (a *App) cbMenuOrders(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	orders, err := a.orders.ListByUser(ctx, c.Sender().ID)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if len(orders) == 0 {
		_, err := editOrResend(c, textNoOrders, userBackMenu())
		return err
	}

	var b strings.Builder
	b.WriteString("🧾 **سفارشات شما**\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "\n%s **#%d** %s\n💰 %s تومان | 📅 %s\n",
			orderStatusNames[string(o.Status)], o.ID, o.ProductName,
			FormatPrice(o.Price), o.CreatedAt.Format("2006/01/02"),
		)
	}
	_, err = editOrResend(c, b.String(), userBackMenu())
	return err
}

func (a *App) cbMenuProducts(c tele.Context) error {
	return a.renderProductsPage(c, 1)
}

func (a *App) cbProductsPage(c tele.Context) error {
	page, err := callbacks.PayloadInt(c)
	if err != nil {
		page = 1
	}
	return a.renderProductsPage(c, page)
}

func (a *App) renderProductsPage(c tele.Context, page int) error {
	ctx := tghelpers.BuildContext(c)

	pg, err := a.catalog.PaginateProducts(ctx, page, userProductsPerPage)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if pg.TotalCount == 0 {
		_, err := editOrResend(c, "🛍️ **محصولات**\n\nهنوز محصولی ثبت نشده است.", userBackMenu())
		return err
	}

	text := fmt.Sprintf("🛍️ **محصولات** (صفحه %d از %d)\n\nبرای مشاهده جزئیات روی محصول بزنید:",
		pg.CurrentPage, pg.TotalPages)

	var rows [][]keyboard.InlineBtn
	for _, p := range pg.Items {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("%s — %s تومان", p.Name, FormatPrice(p.Price)),
			Unique: cbViewProduct,
			Data:   fmt.Sprint(p.ID),
		}})
	}
	rows = append(rows, pageNav(cbProductsPage,
		fmt.Sprint(page-1), fmt.Sprint(page+1),
		pg.HasPrev(), pg.HasNext(),
		"⬅️ قبلی", "بعدی ➡️",
	))
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت به منوی اصلی", Unique: cbMenuMain}})

	_, err = editOrResend(c, text, keyboard.InlineButtonsRows(rows...))
	return err
}

func (a *App) cbViewProduct(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	// Backing out of the payment prompt lands here; a stale purchase state
	// must not swallow the next unrelated photo.
	if _, pending := a.dialogs.Get(userID).(dialog.Purchase); pending {
		a.dialogs.Clear(userID)
	}

	product, images, err := a.catalog.ProductWithImages(ctx, productID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	if err != nil {
		return c.Send(textGenericStorageError)
	}

	caption := fmt.Sprintf("🛍️ **%s**\n\n💰 قیمت: %s تومان", product.Name, FormatPrice(product.Price))
	if product.Description.Valid && product.Description.String != "" {
		caption += "\n\n📝 " + product.Description.String
	}

	id := fmt.Sprint(productID)
	var rows [][]keyboard.InlineBtn
	rows = append(rows, []keyboard.InlineBtn{{Text: "💳 خرید", Unique: cbBuyProduct, Data: id}})
	if len(images) > 1 {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("🖼️ مشاهده همه عکس‌ها (%d)", len(images)),
			Unique: cbViewAllImages,
			Data:   id,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت به محصولات", Unique: cbMenuProducts}})
	markup := keyboard.InlineButtonsRows(rows...)

	if len(images) == 0 {
		_, err := editOrResend(c, caption, markup)
		return err
	}

	// A photo cannot replace a text message in place, so the old message
	// goes away and the photo arrives fresh.
	_ = c.Delete()
	photo := &tele.Photo{File: tele.File{FileID: images[0].FileID}, Caption: caption}
	_, err = c.Bot().Send(c.Recipient(), photo, &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: markup,
	})
	return err
}

func (a *App) cbViewAllImages(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	return a.renderGalleryPage(c, productID, 1)
}

func (a *App) cbImagesPage(c tele.Context) error {
	productID, page, err := callbacks.PayloadTwoInt64(c, ":")
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	return a.renderGalleryPage(c, productID, int(page))
}

func (a *App) renderGalleryPage(c tele.Context, productID int64, page int) error {
	ctx := tghelpers.BuildContext(c)

	pg, err := a.catalog.PaginateImages(ctx, productID, page, galleryPerPage)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if len(pg.Items) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ عکسی یافت نشد!"})
	}

	caption := fmt.Sprintf("🖼️ عکس %d از %d", pg.CurrentPage, pg.TotalPages)
	markup := keyboard.InlineButtonsRows(
		pageNav(cbImagesPage,
			fmt.Sprintf("%d:%d", productID, page-1),
			fmt.Sprintf("%d:%d", productID, page+1),
			pg.HasPrev(), pg.HasNext(),
			"⬅️ قبلی", "بعدی ➡️",
		),
		[]keyboard.InlineBtn{{Text: "🔙 بازگشت به محصول", Unique: cbViewProduct, Data: fmt.Sprint(productID)}},
	)

	_ = c.Delete()
	photo := &tele.Photo{File: tele.File{FileID: pg.Items[0].FileID}, Caption: caption}
	_, err = c.Bot().Send(c.Recipient(), photo, &tele.SendOptions{ReplyMarkup: markup})
	return err
}

func (a *App) cbBuyProduct(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	registered, err := a.users.IsRegistered(ctx, userID)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if !registered {
		_, err := editOrResend(c, textNotRegistered, registrationMenu())
		return err
	}

	product, err := a.catalog.Product(ctx, productID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	if err != nil {
		return c.Send(textGenericStorageError)
	}

	// The price charged is the one on screen right now, not whatever the
	// catalog says by the time the screenshot arrives.
	a.dialogs.Set(userID, dialog.Purchase{ProductID: productID, Price: product.Price})

	text := fmt.Sprintf(
		"💳 **خرید %s**\n\n💰 مبلغ قابل پرداخت: %s تومان\n\n📸 پس از واریز، اسکرین‌شات پرداخت خود را همین‌جا ارسال کنید:",
		product.Name, FormatPrice(product.Price),
	)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ انصراف", Unique: cbViewProduct, Data: fmt.Sprint(productID)},
	})

	if c.Message() != nil && c.Message().Photo != nil {
		_ = c.Delete()
		_, err := c.Bot().Send(c.Recipient(), text, &tele.SendOptions{
			ParseMode:   tele.ModeMarkdown,
			ReplyMarkup: markup,
		})
		return err
	}
	_, err = editOrResend(c, text, markup)
	return err
}
