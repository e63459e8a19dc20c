package bot

import (
	"fmt"

	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/core/telegram/keyboard"
	"bazaarbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) cbEditProfile(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	registered, err := a.users.IsRegistered(ctx, c.Sender().ID)
	if err != nil {
		return c.Send(textGenericStorageError)
	}
	if !registered {
		_, err := editOrResend(c, textNotRegistered, registrationMenu())
		return err
	}
	_, err = editOrResend(c, textEditProfileMenu, profileEditMenu())
	return err
}

// profileFieldPrompt builds the handler that arms editing of one profile
// field and asks for the new value.
func (a *App) profileFieldPrompt(field dialog.ProfileField) tele.HandlerFunc {
	return func(c tele.Context) error {
		a.dialogs.Set(c.Sender().ID, dialog.ProfileEdit{Field: field})

		name := profileFieldNames[string(field)]
		text := fmt.Sprintf("✏️ **ویرایش %s**\n\nلطفاً %s جدید را ارسال کنید:", name, name)
		_, err := editOrResend(c, text, keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "❌ لغو", Unique: cbEditProfile},
		}))
		return err
	}
}

func (a *App) handleProfileEditText(c tele.Context, st dialog.ProfileEdit, text string) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	if err := a.users.UpdateProfileField(ctx, userID, string(st.Field), text); err != nil {
		return c.Send(textGenericStorageError)
	}
	a.dialogs.Clear(userID)

	reply := fmt.Sprintf("✅ %s با موفقیت به‌روزرسانی شد!", profileFieldNames[string(st.Field)])
	return tghelpers.SendMD(c, reply, mainMenu())
}
