package bot

import (
	"math/rand"
	"strings"

	tghelpers "bazaarbot/core/telegram/helpers"
	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"

	tele "gopkg.in/telebot.v4"
)

// InProgress reports whether the sender is inside a conversation flow.
func (a *App) InProgress(userID int64) bool {
	return a.dialogs.InProgress(userID)
}

// HandleText routes a text message by the sender's current conversation
// state. Priority is fixed: password > broadcast > commands > registration >
// profile edit > product creation > product edit; photo-waiting states fall
// through to free-text handling.
func (a *App) HandleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	if _, waiting := a.dialogs.Get(userID).(dialog.AwaitingPassword); waiting {
		// Password attempts stay out of the message telemetry.
		return a.attemptAdminLogin(c, text)
	}
	if _, waiting := a.dialogs.Get(userID).(dialog.AwaitingBroadcast); !waiting {
		if h := a.commandOverride(text); h != nil {
			a.dialogs.Clear(userID)
			return h(c)
		}
	}
	a.recordTraffic(c, text)

	switch st := a.dialogs.Get(userID).(type) {
	case dialog.AwaitingBroadcast:
		return a.handleBroadcastText(c, text)
	case dialog.Registration:
		return a.handleRegistrationText(c, st, text)
	case dialog.ProfileEdit:
		return a.handleProfileEditText(c, st, text)
	case dialog.ProductCreate:
		return a.handleProductCreateText(c, st, text)
	case dialog.ProductFieldEdit:
		return a.handleProductEditText(c, st, text)
	default:
		// Purchase and ImageAdd wait for a photo; plain text chats on.
		return a.freeTextReply(c, text)
	}
}

// HandlePhoto routes a photo by the sender's current conversation state.
func (a *App) HandlePhoto(c tele.Context) error {
	userID := c.Sender().ID
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	ref := models.PhotoRef{
		FileID:       photo.FileID,
		FileUniqueID: photo.UniqueID,
		FileSize:     photo.FileSize,
		Width:        photo.Width,
		Height:       photo.Height,
	}

	switch st := a.dialogs.Get(userID).(type) {
	case dialog.ProductCreate:
		if st.Step == dialog.ProductWaitingImage {
			return a.handleProductPhoto(c, st, ref)
		}
	case dialog.ProductFieldEdit:
		if st.Field == dialog.ProductImage {
			return a.handleGalleryPhoto(c, st.ProductID, ref)
		}
	case dialog.ImageAdd:
		return a.handleGalleryPhoto(c, st.ProductID, ref)
	case dialog.Purchase:
		return a.handlePaymentScreenshot(c, st, ref)
	}
	return c.Send(textPhotoAck)
}

// commandOverride resolves commands that cut through an in-progress flow.
// The broadcast capture state swallows plain text before this runs.
func (a *App) commandOverride(text string) tele.HandlerFunc {
	if !strings.HasPrefix(text, "/") {
		return nil
	}
	cmd := text
	if i := strings.IndexAny(cmd, " @"); i >= 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/start":
		return a.handleStart
	case "/help":
		return a.handleHelp
	case "/admin":
		return a.handleAdminCommand
	}
	return nil
}

// handleFreeText serves idle users whose text matched no command.
func (a *App) handleFreeText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	a.recordTraffic(c, text)
	return a.freeTextReply(c, text)
}

// freeTextReply runs the keyword intent list: substring containment,
// first match wins, else one of the canned replies picked pseudorandomly.
func (a *App) freeTextReply(c tele.Context, text string) error {
	switch {
	case containsAny(text, greetingWords):
		return c.Send(replyGreeting)
	case containsAny(text, farewellWords):
		return c.Send(replyFarewell)
	case containsAny(text, moodWords):
		return c.Send(replyMood)
	case containsAny(text, thanksWords):
		return c.Send(replyThanks)
	default:
		return c.Send(fallbackReplies[rand.Intn(len(fallbackReplies))])
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// recordTraffic feeds the daily stats. Telemetry failures never abort the
// message being handled.
func (a *App) recordTraffic(c tele.Context, text string) {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	a.users.TouchActivity(ctx, userID)
	_ = a.audit.Message(ctx, userID, text, "text")
}
