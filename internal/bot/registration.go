package bot

import (
	"fmt"
	"strings"

	"bazaarbot/core/telegram/format"
	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) cbStartRegistration(c tele.Context) error {
	a.dialogs.Set(c.Sender().ID, dialog.Registration{Step: dialog.RegWaitingName})
	_, err := editOrResend(c, textRegistrationStart, cancelRegistrationRow())
	return err
}

func (a *App) cbCancelRegistration(c tele.Context) error {
	a.dialogs.Clear(c.Sender().ID)
	_, err := editOrResend(c, textRegistrationCancelled, registrationMenu())
	return err
}

func (a *App) cbSkipPhone(c tele.Context) error {
	userID := c.Sender().ID
	st, ok := a.dialogs.Get(userID).(dialog.Registration)
	if !ok || st.Step != dialog.RegWaitingPhone {
		return nil
	}
	st.Phone = nil
	st.Step = dialog.RegWaitingCity
	a.dialogs.Set(userID, st)

	text := "✅ شماره تلفن رد شد\n\n" + textAskCity
	_, err := editOrResend(c, text, skipCancelRow(cbSkipCity))
	return err
}

func (a *App) cbSkipCity(c tele.Context) error {
	userID := c.Sender().ID
	st, ok := a.dialogs.Get(userID).(dialog.Registration)
	if !ok || st.Step != dialog.RegWaitingCity {
		return nil
	}
	return a.completeRegistration(c, st, nil)
}

// handleRegistrationText advances the registration flow one step. Input
// that does not match the current step re-prompts without advancing.
func (a *App) handleRegistrationText(c tele.Context, st dialog.Registration, text string) error {
	userID := c.Sender().ID

	switch st.Step {
	case dialog.RegWaitingName:
		parts := strings.Fields(text)
		if len(parts) < 2 {
			return tghelpers.SendMD(c, textNameSplitError, cancelRegistrationRow())
		}
		st.FirstName = parts[0]
		st.LastName = strings.Join(parts[1:], " ")
		st.Step = dialog.RegWaitingPhone
		a.dialogs.Set(userID, st)

		reply := fmt.Sprintf(
			"✅ نام دریافت شد: %s %s\n\n📱 **شماره تلفن (اختیاری):**\nشماره تلفن خود را ارسال کنید یا Enter بزنید تا رد شود:",
			st.FirstName, st.LastName,
		)
		return tghelpers.SendMD(c, reply, skipCancelRow(cbSkipPhone))

	case dialog.RegWaitingPhone:
		var phone *string
		if text != "" {
			phone = &text
		}
		st.Phone = phone
		st.Step = dialog.RegWaitingCity
		a.dialogs.Set(userID, st)

		received := "رد شد"
		if phone != nil {
			received = *phone
		}
		reply := fmt.Sprintf("✅ شماره تلفن دریافت شد: %s\n\n%s", received, textAskCity)
		return tghelpers.SendMD(c, reply, skipCancelRow(cbSkipCity))

	case dialog.RegWaitingCity:
		var city *string
		if text != "" {
			city = &text
		}
		return a.completeRegistration(c, st, city)
	}
	return nil
}

// completeRegistration persists the collected profile and clears state.
// On a storage failure the state is kept so the user can resubmit.
func (a *App) completeRegistration(c tele.Context, st dialog.Registration, city *string) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	if err := a.users.Register(ctx, userID, st.FirstName, st.LastName, st.Phone, city); err != nil {
		return c.Send(textGenericStorageError)
	}
	a.dialogs.Clear(userID)

	text := fmt.Sprintf(
		"✅ **ثبت نام با موفقیت تکمیل شد!**\n\n👤 **اطلاعات شما:**\n👤 نام: %s %s\n📱 شماره تلفن: %s\n🏙️ شهر: %s\n\n🎉 حالا می‌توانید از تمام امکانات ربات استفاده کنید!",
		st.FirstName, st.LastName,
		format.DerefString(st.Phone, "ثبت نشده"),
		format.DerefString(city, "ثبت نشده"),
	)

	if c.Callback() != nil {
		_, err := editOrResend(c, text, mainMenu())
		return err
	}
	return tghelpers.SendMD(c, text, mainMenu())
}
