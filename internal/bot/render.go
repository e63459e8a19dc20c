package bot

import (
	"strings"

	"bazaarbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func isNotModified(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "message is not modified")
}

// editOrResend edits the callback's message in place. A "not modified"
// rejection degrades to a keyboard-only edit; any other failure degrades
// to a fresh message. Returns the fresh message when one was sent so the
// caller can re-record panel references.
func editOrResend(c tele.Context, text string, markup *tele.ReplyMarkup) (*tele.Message, error) {
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}

	err := c.Edit(text, opts)
	if err == nil {
		return nil, nil
	}
	if isNotModified(err) {
		if markup != nil {
			if kbErr := c.Edit(markup); kbErr == nil {
				return nil, nil
			}
			return c.Bot().Send(c.Recipient(), text, opts)
		}
		return nil, nil
	}
	return c.Bot().Send(c.Recipient(), text, opts)
}

// pageNav renders the prev/next row. Non-navigable ends stay visible but
// disabled: they point at the noop callback instead of wrapping or
// clamping.
func pageNav(unique, prevPayload, nextPayload string, hasPrev, hasNext bool, prevText, nextText string) []keyboard.InlineBtn {
	prev := keyboard.InlineBtn{Text: prevText, Unique: cbNoop}
	if hasPrev {
		prev = keyboard.InlineBtn{Text: prevText, Unique: unique, Data: prevPayload}
	}
	next := keyboard.InlineBtn{Text: nextText, Unique: cbNoop}
	if hasNext {
		next = keyboard.InlineBtn{Text: nextText, Unique: unique, Data: nextPayload}
	}
	return []keyboard.InlineBtn{prev, next}
}
