package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"bazaarbot/core/logger"
	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

func senderName(c tele.Context) (username, firstName, lastName string) {
	s := c.Sender()
	if s == nil {
		return "", "", ""
	}
	return s.Username, s.FirstName, s.LastName
}

// handleStart records the user on first contact and shows either the main
// menu or the registration entry point.
func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	username, firstName, lastName := senderName(c)

	if err := a.users.Ensure(ctx, userID, username, firstName, lastName); err != nil {
		return c.Send(textGenericStorageError)
	}

	registered, err := a.users.IsRegistered(ctx, userID)
	if err != nil {
		return c.Send(textGenericStorageError)
	}

	logger.Info(ctx, "app", "start",
		slog.Int64("user_id", userID),
		slog.Bool("registered", registered),
	)

	if registered {
		text := fmt.Sprintf(
			"🎉 **سلام %s!** 🎉\n\n✨ به **دهکده مامایی ایران** خوش آمدید! ✨\n\n🚀 از منو زیر گزینه مورد نظرتون رو انتخاب بکنید.",
			firstName,
		)
		return tghelpers.SendMD(c, text, mainMenu())
	}

	text := fmt.Sprintf(
		"🎉 **سلام %s!** 🎉\n\n"+
			"✨ به تلگرام **دهکده مامایی ایران** خوش آمدید! ✨\n\n"+
			"🤖 من یک ربات هوشمند هستم که می‌تونم:\n"+
			"• 💬 با شما چت کنم\n"+
			"• 🧮 محاسبات مالی انجام بدم\n"+
			"• 📊 آمار و اطلاعات محصولات را به شما ارائه بدم\n"+
			"• 🎯 به سوالات شما پاسخ بدم و تجربه خرید راحت تری برای شما فراهم بکنم\n\n"+
			"📝 **برای استفاده از تمام امکانات، ابتدا ثبت نام کنید:**",
		firstName,
	)
	return tghelpers.SendMD(c, text, registrationMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendMD(c, textHelp)
}

// handleAdminCommand starts the password dialogue, or treats the message
// as a password attempt when one is already pending.
func (a *App) handleAdminCommand(c tele.Context) error {
	userID := c.Sender().ID

	if _, waiting := a.dialogs.Get(userID).(dialog.AwaitingPassword); waiting {
		return a.attemptAdminLogin(c, strings.TrimSpace(c.Text()))
	}

	a.dialogs.Set(userID, dialog.AwaitingPassword{})
	return tghelpers.SendMD(c, textAskPassword)
}

// attemptAdminLogin checks the password, creating a session on success.
// Either way the awaiting-password state is consumed.
func (a *App) attemptAdminLogin(c tele.Context, password string) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	a.dialogs.Clear(userID)

	if password != a.cfg.Admin.Password {
		_ = a.audit.Record(ctx, userID, "admin_login_failed",
			fmt.Sprintf("failed login attempt with password: %s***", maskPassword(password)))
		logger.Warn(ctx, "app", "admin.login.fail",
			slog.Int64("user_id", userID),
		)
		return c.Send(textWrongPassword)
	}

	a.sessions.Create(userID)
	_ = a.audit.Record(ctx, userID, "admin_login", "successful admin panel login")
	logger.Info(ctx, "app", "admin.login",
		slog.Int64("user_id", userID),
	)

	text := fmt.Sprintf(
		"🔐 **پنل ادمین** 🔐\n\n✅ **ورود موفق!** خوش آمدید!\n\n⏰ **مدت زمان session:** %d دقیقه\n\n🎯 **منوی ادمین را انتخاب کنید:**",
		int(a.sessions.Duration().Minutes()),
	)
	return a.sendPanel(c, text, adminMenu())
}

func maskPassword(p string) string {
	if len(p) > 3 {
		return p[:3]
	}
	return p
}
