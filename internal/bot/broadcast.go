package bot

import (
	"fmt"
	"log/slog"

	"bazaarbot/core/logger"
	"bazaarbot/core/telegram/format"
	tghelpers "bazaarbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// handleBroadcastText fans the admin's message out to every active user.
// Delivery runs in the background; blocked users only bump the failure
// count. The admin gets a progress note immediately and a summary when the
// fan-out finishes.
func (a *App) handleBroadcastText(c tele.Context, text string) error {
	ctx := tghelpers.BuildContext(c)
	adminID := c.Sender().ID
	a.dialogs.Clear(adminID)

	if !a.sessions.IsValid(adminID) {
		return c.Send(textSessionExpired)
	}

	recipients, err := a.users.ActiveIDs(ctx)
	if err != nil {
		return a.updatePanel(c, textGenericStorageError, adminBackMenu())
	}
	if len(recipients) == 0 {
		return a.updatePanel(c, "📢 کاربری برای دریافت پیام وجود ندارد.", adminBackMenu())
	}

	if err := a.updatePanel(c,
		fmt.Sprintf("📤 در حال ارسال پیام به %d کاربر...", len(recipients)),
		adminBackMenu()); err != nil {
		return err
	}

	// Free-form admin text may carry unbalanced markdown markers that would
	// make Telegram reject the whole fan-out.
	body, escErr := format.EscapeMarkdown(text, format.MarkdownV1, "")
	if escErr != nil {
		body = text
	}
	message := "📢 **پیام ادمین:**\n\n" + body
	runCtx := a.runContext()

	go func() {
		sent, failed := 0, 0
		for _, userID := range recipients {
			if runCtx.Err() != nil {
				logger.Warn(runCtx, "app", "broadcast.aborted",
					slog.Int("sent", sent),
					slog.Int("remaining", len(recipients)-sent-failed),
				)
				return
			}
			if err := a.notifier.NotifyUser(runCtx, userID, message); err != nil {
				failed++
				continue
			}
			sent++
		}

		logger.Info(runCtx, "app", "broadcast.done",
			slog.Int64("admin_id", adminID),
			slog.Int("sent", sent),
			slog.Int("failed", failed),
		)
		_ = a.audit.Record(runCtx, adminID, "broadcast_sent",
			fmt.Sprintf("broadcast delivered to %d users, %d failed", sent, failed))

		summary := fmt.Sprintf("✅ **پیام همگانی ارسال شد**\n\n📬 موفق: %d\n❌ ناموفق: %d", sent, failed)
		if err := a.notifier.NotifyUser(runCtx, adminID, summary); err != nil {
			logger.Warn(runCtx, "app", "broadcast.summary.fail",
				slog.Int64("admin_id", adminID),
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}
