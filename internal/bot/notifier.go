package bot

import (
	"context"
	"fmt"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// telegramNotifier delivers direct messages outside of a handler's own
// chat, e.g. order decision notices and broadcasts. It is bound to the
// live bot on start and unbound on stop.
type telegramNotifier struct {
	bot atomic.Pointer[tele.Bot]
}

func (n *telegramNotifier) bind(b *tele.Bot) {
	n.bot.Store(b)
}

// NotifyUser sends a plain text message to the user's private chat.
func (n *telegramNotifier) NotifyUser(ctx context.Context, userID int64, text string) error {
	b := n.bot.Load()
	if b == nil {
		return fmt.Errorf("notifier: bot not running")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.Send(&tele.User{ID: userID}, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	return err
}
