package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/dialog"
)

func TestRegistrationHappyPath(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app

	c := newCallbackCtx(10, cbStartRegistration, "")
	require.NoError(t, app.cbStartRegistration(c))
	st, ok := app.dialogs.Get(10).(dialog.Registration)
	require.True(t, ok)
	assert.Equal(t, dialog.RegWaitingName, st.Step)

	// Full name in one message.
	c2 := newFakeCtx(10, "علی احمدی")
	require.NoError(t, app.HandleText(c2))
	st = app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, dialog.RegWaitingPhone, st.Step)
	assert.Equal(t, "علی", st.FirstName)
	assert.Equal(t, "احمدی", st.LastName)

	c3 := newFakeCtx(10, "09121234567")
	require.NoError(t, app.HandleText(c3))
	st = app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, dialog.RegWaitingCity, st.Step)
	require.NotNil(t, st.Phone)
	assert.Equal(t, "09121234567", *st.Phone)

	c4 := newFakeCtx(10, "تهران")
	require.NoError(t, app.HandleText(c4))

	assert.False(t, app.dialogs.InProgress(10), "flow completed")
	user := f.users.users[10]
	assert.True(t, user.IsRegistered)
	assert.Equal(t, "تهران", user.City.String)
	assert.Equal(t, "09121234567", user.Phone.String)
	assert.Contains(t, c4.lastText(), "ثبت نام با موفقیت تکمیل شد")
}

func TestRegistrationSingleTokenNameRePrompts(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app
	app.dialogs.Set(10, dialog.Registration{Step: dialog.RegWaitingName})

	c := newFakeCtx(10, "علی")
	require.NoError(t, app.HandleText(c))

	st := app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, dialog.RegWaitingName, st.Step, "step does not advance")
	assert.Contains(t, c.lastText(), "نام و نام خانوادگی")
}

func TestRegistrationExtraTokensJoinLastName(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app
	app.dialogs.Set(10, dialog.Registration{Step: dialog.RegWaitingName})

	require.NoError(t, app.HandleText(newFakeCtx(10, "علی رضا احمدی")))

	st := app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, "علی", st.FirstName)
	assert.Equal(t, "رضا احمدی", st.LastName)
}

func TestRegistrationSkipButtons(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app
	app.dialogs.Set(10, dialog.Registration{
		Step: dialog.RegWaitingPhone, FirstName: "علی", LastName: "احمدی",
	})

	require.NoError(t, app.cbSkipPhone(newCallbackCtx(10, cbSkipPhone, "")))
	st := app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, dialog.RegWaitingCity, st.Step)
	assert.Nil(t, st.Phone)

	require.NoError(t, app.cbSkipCity(newCallbackCtx(10, cbSkipCity, "")))
	assert.False(t, app.dialogs.InProgress(10))

	user := f.users.users[10]
	assert.True(t, user.IsRegistered)
	assert.False(t, user.Phone.Valid)
	assert.False(t, user.City.Valid)
}

func TestSkipButtonsIgnoreWrongStep(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app
	app.dialogs.Set(10, dialog.Registration{Step: dialog.RegWaitingName})

	require.NoError(t, app.cbSkipCity(newCallbackCtx(10, cbSkipCity, "")))

	st := app.dialogs.Get(10).(dialog.Registration)
	assert.Equal(t, dialog.RegWaitingName, st.Step, "stale button is a no-op")
	assert.False(t, f.users.users[10].IsRegistered)
}

func TestCancelRegistration(t *testing.T) {
	f := newTestApp()
	f.seedUser(10, false)
	app := f.app
	app.dialogs.Set(10, dialog.Registration{Step: dialog.RegWaitingCity})

	c := newCallbackCtx(10, cbCancelRegistration, "")
	require.NoError(t, app.cbCancelRegistration(c))

	assert.False(t, app.dialogs.InProgress(10))
	assert.False(t, f.users.users[10].IsRegistered)
	assert.Contains(t, c.lastText(), "لغو شد")
}
