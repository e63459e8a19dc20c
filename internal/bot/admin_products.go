package bot

import (
	"errors"
	"fmt"

	"bazaarbot/core/telegram/callbacks"
	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/core/telegram/keyboard"
	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

const adminProductsPerPage = 10

func (a *App) cbAdminProducts(c tele.Context) error {
	a.clearAdminFlow(c.Sender().ID)
	ctx := tghelpers.BuildContext(c)

	count, err := a.catalog.CountActive(ctx)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, adminBackMenu())
	}
	text := fmt.Sprintf("🛍️ **مدیریت محصولات**\n\n📦 تعداد محصولات فعال: %d", count)
	return a.renderPanel(c, text, productsAdminMenu())
}

func (a *App) cbAddProduct(c tele.Context) error {
	a.dialogs.Set(c.Sender().ID, dialog.ProductCreate{Step: dialog.ProductWaitingName})
	return a.renderPanel(c, "➕ **افزودن محصول جدید**\n\n📝 نام محصول را ارسال کنید:", productStepCancelRow())
}

// handleProductCreateText advances the four-step creation flow. Invalid
// input re-prompts without advancing.
func (a *App) handleProductCreateText(c tele.Context, st dialog.ProductCreate, text string) error {
	adminID := c.Sender().ID
	if !a.sessions.IsValid(adminID) {
		a.dialogs.Clear(adminID)
		return c.Send(textSessionExpired)
	}

	switch st.Step {
	case dialog.ProductWaitingName:
		st.Name = text
		st.Step = dialog.ProductWaitingPrice
		a.dialogs.Set(adminID, st)
		return a.updatePanel(c,
			fmt.Sprintf("✅ نام: %s\n\n💰 قیمت محصول را به تومان ارسال کنید:", st.Name),
			productStepCancelRow())

	case dialog.ProductWaitingPrice:
		price, err := ParsePrice(text)
		if err != nil {
			return a.updatePanel(c, textInvalidPrice, productStepCancelRow())
		}
		st.Price = price
		st.Step = dialog.ProductWaitingImage
		a.dialogs.Set(adminID, st)
		return a.updatePanel(c,
			fmt.Sprintf("✅ قیمت: %s تومان\n\n🖼️ عکس محصول را ارسال کنید:", FormatPrice(price)),
			productStepSkipRow(cbSkipImage))

	case dialog.ProductWaitingImage:
		// Waiting for a photo; text nudges the admin back on track.
		return a.updatePanel(c, "🖼️ لطفاً عکس محصول را ارسال کنید یا رد کنید:", productStepSkipRow(cbSkipImage))

	case dialog.ProductWaitingDescription:
		return a.completeProductCreate(c, st, &text)
	}
	return nil
}

// handleProductPhoto captures the creation-flow photo. The product row does
// not exist yet, so the reference is queued on the state.
func (a *App) handleProductPhoto(c tele.Context, st dialog.ProductCreate, ref models.PhotoRef) error {
	adminID := c.Sender().ID
	if !a.sessions.IsValid(adminID) {
		a.dialogs.Clear(adminID)
		return c.Send(textSessionExpired)
	}

	st.Image = &ref
	st.Step = dialog.ProductWaitingDescription
	a.dialogs.Set(adminID, st)
	return a.updatePanel(c,
		"✅ عکس دریافت شد!\n\n📝 توضیحات محصول را ارسال کنید:",
		productStepSkipRow(cbSkipDescription))
}

func (a *App) cbSkipImage(c tele.Context) error {
	adminID := c.Sender().ID
	st, ok := a.dialogs.Get(adminID).(dialog.ProductCreate)
	if !ok || st.Step != dialog.ProductWaitingImage {
		return nil
	}
	st.Image = nil
	st.Step = dialog.ProductWaitingDescription
	a.dialogs.Set(adminID, st)
	return a.renderPanel(c,
		"⏭️ عکس رد شد\n\n📝 توضیحات محصول را ارسال کنید:",
		productStepSkipRow(cbSkipDescription))
}

func (a *App) cbSkipDescription(c tele.Context) error {
	adminID := c.Sender().ID
	st, ok := a.dialogs.Get(adminID).(dialog.ProductCreate)
	if !ok || st.Step != dialog.ProductWaitingDescription {
		return nil
	}
	return a.completeProductCreate(c, st, nil)
}

func (a *App) completeProductCreate(c tele.Context, st dialog.ProductCreate, description *string) error {
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID

	productID, err := a.catalog.CreateProduct(ctx, adminID, st.Name, st.Price, st.Image, description)
	if err != nil {
		return a.updatePanel(c, textGenericStorageError, productStepCancelRow())
	}
	a.dialogs.Clear(adminID)

	text := fmt.Sprintf(
		"✅ **محصول با موفقیت اضافه شد!**\n\n📦 نام: %s\n💰 قیمت: %s تومان\n🆔 شناسه: #%d",
		st.Name, FormatPrice(st.Price), productID,
	)
	if c.Callback() != nil {
		return a.renderPanel(c, text, productsAdminMenu())
	}
	return a.updatePanel(c, text, productsAdminMenu())
}

func (a *App) cbListProducts(c tele.Context) error {
	return a.renderAdminProductsPage(c, 1)
}

func (a *App) cbAdminProductsPage(c tele.Context) error {
	page, err := callbacks.PayloadInt(c)
	if err != nil {
		page = 1
	}
	return a.renderAdminProductsPage(c, page)
}

func (a *App) renderAdminProductsPage(c tele.Context, page int) error {
	ctx := tghelpers.BuildContext(c)

	pg, err := a.catalog.PaginateProducts(ctx, page, adminProductsPerPage)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, productsAdminMenu())
	}
	if pg.TotalCount == 0 {
		return a.renderPanel(c, "📋 **لیست محصولات**\n\nهنوز محصولی ثبت نشده است.", productsAdminMenu())
	}

	text := fmt.Sprintf("📋 **لیست محصولات** (%d محصول، صفحه %d از %d)\n\nبرای مدیریت روی محصول بزنید:",
		pg.TotalCount, pg.CurrentPage, pg.TotalPages)

	var rows [][]keyboard.InlineBtn
	for _, p := range pg.Items {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("#%d %s — %s تومان", p.ID, p.Name, FormatPrice(p.Price)),
			Unique: cbManageProduct,
			Data:   fmt.Sprint(p.ID),
		}})
	}
	rows = append(rows, pageNav(cbAdminProductsPage,
		fmt.Sprint(page-1), fmt.Sprint(page+1),
		pg.HasPrev(), pg.HasNext(),
		"⬅️ قبلی", "بعدی ➡️",
	))
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت", Unique: cbAdminProducts}})

	return a.renderPanel(c, text, keyboard.InlineButtonsRows(rows...))
}

func (a *App) cbManageProduct(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	a.clearAdminFlow(c.Sender().ID)
	ctx := tghelpers.BuildContext(c)

	product, images, err := a.catalog.ProductWithImages(ctx, productID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, productsAdminMenu())
	}

	desc := "ندارد"
	if product.Description.Valid && product.Description.String != "" {
		desc = product.Description.String
	}
	text := fmt.Sprintf(
		"⚙️ **مدیریت محصول #%d**\n\n"+
			"📦 نام: %s\n"+
			"💰 قیمت: %s تومان\n"+
			"📝 توضیحات: %s\n"+
			"🖼️ تعداد عکس‌ها: %d",
		product.ID, product.Name, FormatPrice(product.Price), desc, len(images),
	)
	return a.renderPanel(c, text, productEditMenu(productID))
}

// productFieldPrompt builds the handler that arms editing of one product
// field and asks for the new value.
func (a *App) productFieldPrompt(field dialog.ProductField, prompt string) tele.HandlerFunc {
	return func(c tele.Context) error {
		productID, err := callbacks.PayloadInt64(c)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
		}
		a.dialogs.Set(c.Sender().ID, dialog.ProductFieldEdit{ProductID: productID, Field: field})
		return a.renderPanel(c, prompt, manageProductCancelRow(productID))
	}
}

func (a *App) handleProductEditText(c tele.Context, st dialog.ProductFieldEdit, text string) error {
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID
	if !a.sessions.IsValid(adminID) {
		a.dialogs.Clear(adminID)
		return c.Send(textSessionExpired)
	}

	var value any = text
	if st.Field == dialog.ProductPrice {
		price, err := ParsePrice(text)
		if err != nil {
			return a.updatePanel(c, textInvalidPrice, manageProductCancelRow(st.ProductID))
		}
		value = price
	}

	if err := a.catalog.UpdateProductField(ctx, adminID, st.ProductID, string(st.Field), value); err != nil {
		return a.updatePanel(c, textGenericStorageError, manageProductCancelRow(st.ProductID))
	}
	a.dialogs.Clear(adminID)

	reply := fmt.Sprintf("✅ %s محصول #%d به‌روزرسانی شد!", productFieldNames[string(st.Field)], st.ProductID)
	return a.updatePanel(c, reply, productEditMenu(st.ProductID))
}

func (a *App) cbDeleteProduct(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	ctx := tghelpers.BuildContext(c)

	if err := a.catalog.DeleteProduct(ctx, c.Sender().ID, productID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
		}
		return c.Respond(&tele.CallbackResponse{Text: textGenericStorageError})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "🗑️ محصول حذف شد"})
	return a.renderAdminProductsPage(c, 1)
}
