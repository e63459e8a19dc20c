package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"
)

func TestPasswordAttemptBypassesTelemetry(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app
	app.dialogs.Set(20, dialog.AwaitingPassword{})

	c := newFakeCtx(20, "wrong-password")
	require.NoError(t, app.HandleText(c))

	assert.Empty(t, f.logs.messages, "password text never reaches message telemetry")
	assert.Contains(t, f.logs.actions, "admin_login_failed")
	assert.Contains(t, c.sent, textWrongPassword)
	assert.False(t, app.dialogs.InProgress(20), "state consumed either way")
	assert.False(t, app.sessions.IsValid(20))
}

func TestCorrectPasswordOpensSession(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app
	app.dialogs.Set(20, dialog.AwaitingPassword{})

	c := newFakeCtx(20, "secret-pass")
	require.NoError(t, app.HandleText(c))

	assert.True(t, app.sessions.IsValid(20))
	assert.Contains(t, f.logs.actions, "admin_login")
	assert.Empty(t, f.logs.messages)
	assert.False(t, app.dialogs.InProgress(20))
}

func TestPlainTextIsRecorded(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)

	c := newFakeCtx(20, "سلام ربات")
	require.NoError(t, f.app.HandleText(c))

	require.Len(t, f.logs.messages, 1)
	assert.Equal(t, "سلام ربات", f.logs.messages[0])
	assert.Equal(t, 1, f.users.users[20].MessageCount)
	assert.Contains(t, c.sent, replyGreeting)
}

func TestFreeTextIntents(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app

	cases := map[string]string{
		"خداحافظ دوست من": replyFarewell,
		"چطوری؟":          replyMood,
		"ممنون از شما":    replyThanks,
	}
	for text, want := range cases {
		c := newFakeCtx(20, text)
		require.NoError(t, app.HandleText(c))
		assert.Contains(t, c.sent, want, "text %q", text)
	}

	// Unmatched text gets one of the canned replies.
	c := newFakeCtx(20, "قیمت دلار چنده")
	require.NoError(t, app.HandleText(c))
	require.Len(t, c.sent, 1)
	assert.Contains(t, fallbackReplies, c.sent[0])
}

func TestPaymentScreenshotPlacesOrder(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app

	// Snapshot price differs from any current catalog price on purpose.
	app.dialogs.Set(20, dialog.Purchase{ProductID: 7, Price: 50000})

	c := newPhotoCtx(20, "screenshot-file-id")
	require.NoError(t, app.HandlePhoto(c))

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[1]
	assert.Equal(t, int64(20), order.UserID)
	assert.Equal(t, int64(7), order.ProductID)
	assert.Equal(t, int64(50000), order.Price, "price is the buy-click snapshot")
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "screenshot-file-id", order.ScreenshotFileID.String)

	assert.False(t, app.dialogs.InProgress(20))
	assert.Contains(t, c.lastText(), "#1")
}

func TestUnexpectedPhotoGetsAck(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)

	c := newPhotoCtx(20, "random")
	require.NoError(t, f.app.HandlePhoto(c))

	assert.Empty(t, f.orders.orders)
	assert.Contains(t, c.sent, textPhotoAck)
}

func TestProductCreationFlow(t *testing.T) {
	f := newTestApp()
	f.seedUser(99, true)
	app := f.app
	app.sessions.Create(99)
	app.dialogs.Set(99, dialog.ProductCreate{Step: dialog.ProductWaitingName})

	require.NoError(t, app.HandleText(newFakeCtx(99, "کرم مرطوب‌کننده")))
	st := app.dialogs.Get(99).(dialog.ProductCreate)
	assert.Equal(t, dialog.ProductWaitingPrice, st.Step)

	// Invalid price re-prompts without advancing.
	require.NoError(t, app.HandleText(newFakeCtx(99, "گران")))
	st = app.dialogs.Get(99).(dialog.ProductCreate)
	assert.Equal(t, dialog.ProductWaitingPrice, st.Step)

	require.NoError(t, app.HandleText(newFakeCtx(99, "50,000")))
	st = app.dialogs.Get(99).(dialog.ProductCreate)
	assert.Equal(t, dialog.ProductWaitingImage, st.Step)
	assert.Equal(t, int64(50000), st.Price)

	require.NoError(t, app.HandlePhoto(newPhotoCtx(99, "product-photo")))
	st = app.dialogs.Get(99).(dialog.ProductCreate)
	assert.Equal(t, dialog.ProductWaitingDescription, st.Step)
	require.NotNil(t, st.Image)

	require.NoError(t, app.HandleText(newFakeCtx(99, "توضیحات محصول")))
	assert.False(t, app.dialogs.InProgress(99))

	require.Len(t, f.products.products, 1)
	p := f.products.products[1]
	assert.Equal(t, "کرم مرطوب‌کننده", p.Name)
	assert.Equal(t, int64(50000), p.Price)
	assert.Equal(t, "توضیحات محصول", p.Description.String)
	require.Len(t, f.images.images[1], 1)
	assert.Equal(t, "product-photo", f.images.images[1][0].FileID)
}

func TestProductCreationExpiredSessionAborts(t *testing.T) {
	f := newTestApp()
	f.seedUser(99, true)
	app := f.app
	// No session created.
	app.dialogs.Set(99, dialog.ProductCreate{Step: dialog.ProductWaitingName})

	c := newFakeCtx(99, "هر چیزی")
	require.NoError(t, app.HandleText(c))

	assert.False(t, app.dialogs.InProgress(99))
	assert.Contains(t, c.sent, textSessionExpired)
	assert.Empty(t, f.products.products)
}

func TestGalleryPhotoAttachesToProduct(t *testing.T) {
	f := newTestApp()
	f.seedUser(99, true)
	app := f.app
	app.sessions.Create(99)
	f.products.products[5] = &models.Product{ID: 5, Name: "x", IsActive: true}
	app.dialogs.Set(99, dialog.ImageAdd{ProductID: 5})

	require.NoError(t, app.HandlePhoto(newPhotoCtx(99, "gallery-shot")))

	assert.False(t, app.dialogs.InProgress(99))
	require.Len(t, f.images.images[5], 1)
	assert.Equal(t, "gallery-shot", f.images.images[5][0].FileID)
}

func TestStartCommandCutsThroughFlow(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app
	app.dialogs.Set(20, dialog.Registration{Step: dialog.RegWaitingName})

	c := newFakeCtx(20, "/start")
	require.NoError(t, app.HandleText(c))

	assert.False(t, app.dialogs.InProgress(20), "registration flow abandoned")
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[len(c.sent)-1], "خوش آمدید")
}

func TestAdminCommandCutsThroughFlow(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app
	app.dialogs.Set(20, dialog.ProfileEdit{Field: dialog.ProfileCity})

	c := newFakeCtx(20, "/admin")
	require.NoError(t, app.HandleText(c))

	_, waiting := app.dialogs.Get(20).(dialog.AwaitingPassword)
	assert.True(t, waiting, "password prompt replaces the abandoned flow")
}

func TestBroadcastCaptureSwallowsSlashText(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)
	app := f.app
	app.sessions.Create(999)
	app.dialogs.Set(999, dialog.AwaitingBroadcast{})

	c := newFakeCtx(999, "/start اطلاعیه مهم")
	require.NoError(t, app.HandleText(c))

	assert.False(t, app.dialogs.InProgress(999))
	assert.Contains(t, c.lastText(), "در حال ارسال")
}

func TestProfileEditText(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	app := f.app
	app.dialogs.Set(20, dialog.ProfileEdit{Field: dialog.ProfileCity})

	c := newFakeCtx(20, "اصفهان")
	require.NoError(t, app.HandleText(c))

	assert.False(t, app.dialogs.InProgress(20))
	assert.Equal(t, "اصفهان", f.users.users[20].City.String)
}
