package bot

import (
	"fmt"
	"strings"
	"time"

	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/internal/dialog"

	tele "gopkg.in/telebot.v4"
)

const adminUsersShown = 10

// renderPanel redraws the admin panel from inside a callback, keeping the
// tracked panel reference current when the edit degraded to a resend.
func (a *App) renderPanel(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	sent, err := editOrResend(c, text, markup)
	if err != nil {
		return err
	}
	if sent != nil {
		a.panels.Remember(c.Sender().ID, sent)
	} else if msg := c.Message(); msg != nil {
		a.panels.Remember(c.Sender().ID, msg)
	}
	return nil
}

// updatePanel redraws the admin panel from outside a callback, e.g. after
// a text or photo step of a management flow. Without a usable reference it
// falls back to a fresh message and tracks that instead.
func (a *App) updatePanel(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	adminID := c.Sender().ID
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}

	if bot := c.Bot(); bot != nil {
		if ref, ok := a.panels.Ref(adminID); ok {
			_, err := bot.Edit(ref, text, opts)
			if err == nil || isNotModified(err) {
				return nil
			}
		}
	}
	return a.sendPanel(c, text, markup)
}

// sendPanel sends a fresh panel message and records it for later edits.
func (a *App) sendPanel(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}
	bot := c.Bot()
	if bot == nil {
		return c.Send(text, opts)
	}
	sent, err := bot.Send(c.Recipient(), text, opts)
	if err != nil {
		return err
	}
	a.panels.Remember(c.Sender().ID, sent)
	return nil
}

func adminPanelText() string {
	return "🔐 **پنل ادمین** 🔐\n\n🎯 **منوی ادمین را انتخاب کنید:**"
}

// clearAdminFlow drops any pending admin input state. Returning to a menu
// is a cancel: a leftover state must not capture the next message.
func (a *App) clearAdminFlow(adminID int64) {
	switch a.dialogs.Get(adminID).(type) {
	case dialog.AwaitingBroadcast, dialog.ProductCreate, dialog.ProductFieldEdit, dialog.ImageAdd:
		a.dialogs.Clear(adminID)
	}
}

func (a *App) cbAdminMenu(c tele.Context) error {
	a.clearAdminFlow(c.Sender().ID)
	return a.renderPanel(c, adminPanelText(), adminMenu())
}

func (a *App) cbAdminRefresh(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{Text: "🔄 تازه‌سازی شد"})
	return a.renderPanel(c, adminPanelText(), adminMenu())
}

func (a *App) cbAdminStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	overview, err := a.stats.Overview(ctx)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, adminBackMenu())
	}

	text := fmt.Sprintf(
		"📊 **آمار ربات**\n\n"+
			"👥 کل کاربران: %d\n"+
			"🆕 کاربران جدید امروز: %d\n"+
			"💬 پیام‌های امروز: %d\n"+
			"🟢 کاربران فعال امروز: %d",
		overview.TotalUsers,
		overview.Daily.NewUsersToday,
		overview.Daily.MessagesToday,
		overview.Daily.ActiveUsersToday,
	)
	return a.renderPanel(c, text, adminBackMenu())
}

func (a *App) cbAdminUsers(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	users, err := a.users.ListActive(ctx)
	if err != nil {
		return a.renderPanel(c, textGenericStorageError, adminBackMenu())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 **کاربران فعال** (%d نفر)\n", len(users))
	shown := len(users)
	if shown > adminUsersShown {
		shown = adminUsersShown
	}
	for _, u := range users[:shown] {
		fmt.Fprintf(&b, "\n• %s %s (@%s) — `%d`",
			nullOr(u.FirstName, "-"),
			nullOr(u.LastName, ""),
			nullOr(u.Username, "ندارد"),
			u.ID,
		)
	}
	if rest := len(users) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n\n… و %d کاربر دیگر", rest)
	}
	return a.renderPanel(c, b.String(), adminBackMenu())
}

func (a *App) cbAdminSession(c tele.Context) error {
	adminID := c.Sender().ID

	s, ok := a.sessions.Get(adminID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: textSessionExpired})
	}
	remaining := time.Until(s.ExpiresAt)
	if remaining < 0 {
		remaining = 0
	}

	text := fmt.Sprintf(
		"🔐 **وضعیت Session**\n\n⏰ زمان ورود: %s\n⌛ زمان باقی‌مانده: %d دقیقه",
		s.LoginAt.Format("15:04:05"),
		int(remaining.Minutes()),
	)
	return a.renderPanel(c, text, adminBackMenu())
}

func (a *App) cbAdminLogout(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID

	a.sessions.Invalidate(adminID)
	a.panels.Forget(adminID)
	_ = a.audit.Record(ctx, adminID, "admin_logout", "admin logged out of panel")

	_, err := editOrResend(c, textLogout, nil)
	return err
}

func (a *App) cbAdminBroadcast(c tele.Context) error {
	a.dialogs.Set(c.Sender().ID, dialog.AwaitingBroadcast{})
	return a.renderPanel(c, textBroadcastPrompt, adminBackMenu())
}
