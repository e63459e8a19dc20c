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

// Telegram caps inline keyboards well above this, but a delete button per
// image stops being navigable long before that.
const manageImagesShown = 5

func (a *App) cbAddProductImage(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	a.dialogs.Set(c.Sender().ID, dialog.ImageAdd{ProductID: productID})
	return a.renderPanel(c, textAddImagePrompt, manageProductCancelRow(productID))
}

// handleGalleryPhoto attaches an uploaded photo to an existing product.
func (a *App) handleGalleryPhoto(c tele.Context, productID int64, ref models.PhotoRef) error {
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID
	if !a.sessions.IsValid(adminID) {
		a.dialogs.Clear(adminID)
		return c.Send(textSessionExpired)
	}

	if err := a.catalog.AddImage(ctx, adminID, productID, ref); err != nil {
		return a.updatePanel(c, textGenericStorageError, manageProductCancelRow(productID))
	}
	a.dialogs.Clear(adminID)

	return a.updatePanel(c,
		fmt.Sprintf("✅ عکس به محصول #%d اضافه شد!", productID),
		productEditMenu(productID))
}

func (a *App) cbManageImages(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textProductNotFound})
	}
	return a.renderManageImages(c, productID)
}

func (a *App) renderManageImages(c tele.Context, productID int64) error {
	ctx := tghelpers.BuildContext(c)

	images, err := a.catalog.Images(ctx, productID)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, productEditMenu(productID))
	}
	if len(images) == 0 {
		return a.renderPanel(c,
			"🖼️ **مدیریت عکس‌ها**\n\nاین محصول هنوز عکسی ندارد.",
			productEditMenu(productID))
	}

	text := fmt.Sprintf("🖼️ **مدیریت عکس‌های محصول #%d** (%d عکس)\n\nعکس اول به عنوان عکس اصلی نمایش داده می‌شود.",
		productID, len(images))

	shown := len(images)
	if shown > manageImagesShown {
		shown = manageImagesShown
	}
	var rows [][]keyboard.InlineBtn
	for i, img := range images[:shown] {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("🗑️ حذف عکس %d", i+1),
			Unique: cbDeleteImage,
			Data:   fmt.Sprintf("%d:%d", img.ID, productID),
		}})
	}
	if rest := len(images) - shown; rest > 0 {
		text += fmt.Sprintf("\n\n… و %d عکس دیگر", rest)
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 بازگشت", Unique: cbManageProduct, Data: fmt.Sprint(productID)}})

	return a.renderPanel(c, text, keyboard.InlineButtonsRows(rows...))
}

func (a *App) cbDeleteImage(c tele.Context) error {
	imageID, productID, err := callbacks.PayloadTwoInt64(c, ":")
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textGenericStorageError})
	}
	ctx := tghelpers.BuildContext(c)

	if err := a.catalog.DeleteImage(ctx, c.Sender().ID, imageID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "❌ عکس یافت نشد!"})
		}
		return c.Respond(&tele.CallbackResponse{Text: textGenericStorageError})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "🗑️ عکس حذف شد"})
	return a.renderManageImages(c, productID)
}
