package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/dialog"
	"bazaarbot/internal/models"

	tele "gopkg.in/telebot.v4"
)

func seedProducts(f *testFixture, n int) {
	for i := 1; i <= n; i++ {
		f.products.products[int64(i)] = &models.Product{
			ID: int64(i), Name: fmt.Sprintf("محصول %d", i), Price: int64(i) * 1000, IsActive: true,
		}
		f.products.nextID = int64(i)
	}
}

// navRow digs the prev/next row out of a rendered keyboard: it is the row
// right above the final back row.
func navRow(t *testing.T, markup *tele.ReplyMarkup) []tele.InlineButton {
	t.Helper()
	require.NotNil(t, markup)
	rows := markup.InlineKeyboard
	require.GreaterOrEqual(t, len(rows), 2)
	return rows[len(rows)-2]
}

func TestProductsFirstPageDisablesPrev(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 7)

	c := newCallbackCtx(20, cbMenuProducts, "")
	require.NoError(t, f.app.cbMenuProducts(c))

	assert.Contains(t, c.lastText(), "صفحه 1 از 2")

	nav := navRow(t, c.lastMarkup())
	require.Len(t, nav, 2)
	assert.Equal(t, cbNoop, nav[0].Unique, "prev disabled on first page")
	assert.Equal(t, cbProductsPage, nav[1].Unique)
	assert.Equal(t, "2", nav[1].Data)
}

func TestProductsLastPageDisablesNext(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 7)

	c := newCallbackCtx(20, cbProductsPage, "2")
	require.NoError(t, f.app.cbProductsPage(c))

	assert.Contains(t, c.lastText(), "صفحه 2 از 2")

	nav := navRow(t, c.lastMarkup())
	assert.Equal(t, cbProductsPage, nav[0].Unique)
	assert.Equal(t, "1", nav[0].Data)
	assert.Equal(t, cbNoop, nav[1].Unique, "next disabled on last page")
}

func TestProductsOutOfRangePageDisablesBoth(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 7)

	c := newCallbackCtx(20, cbProductsPage, "99")
	require.NoError(t, f.app.cbProductsPage(c))

	nav := navRow(t, c.lastMarkup())
	assert.Equal(t, cbNoop, nav[0].Unique)
	assert.Equal(t, cbNoop, nav[1].Unique)
}

func TestEmptyCatalog(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)

	c := newCallbackCtx(20, cbMenuProducts, "")
	require.NoError(t, f.app.cbMenuProducts(c))

	assert.Contains(t, c.lastText(), "هنوز محصولی ثبت نشده")
}

func TestBuyRequiresRegistration(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, false)
	seedProducts(f, 1)

	c := newCallbackCtx(20, cbBuyProduct, "1")
	require.NoError(t, f.app.cbBuyProduct(c))

	assert.False(t, f.app.dialogs.InProgress(20), "no purchase state for unregistered user")
	assert.Contains(t, c.lastText(), "ثبت نام نکرده")
}

func TestBuySnapshotsCurrentPrice(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 1)

	c := newCallbackCtx(20, cbBuyProduct, "1")
	require.NoError(t, f.app.cbBuyProduct(c))

	st, ok := f.app.dialogs.Get(20).(dialog.Purchase)
	require.True(t, ok)
	assert.Equal(t, int64(1), st.ProductID)
	assert.Equal(t, int64(1000), st.Price)

	// A later price change must not affect the armed purchase.
	f.products.products[1].Price = 9999
	st = f.app.dialogs.Get(20).(dialog.Purchase)
	assert.Equal(t, int64(1000), st.Price)
}

func TestBuyDeletedProduct(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 1)
	f.products.products[1].IsActive = false

	c := newCallbackCtx(20, cbBuyProduct, "1")
	require.NoError(t, f.app.cbBuyProduct(c))

	require.NotEmpty(t, c.responds)
	assert.Equal(t, textProductNotFound, c.responds[0].Text)
	assert.False(t, f.app.dialogs.InProgress(20))
}

func TestViewProductClearsStalePurchase(t *testing.T) {
	f := newTestApp()
	f.seedUser(20, true)
	seedProducts(f, 1)
	f.app.dialogs.Set(20, dialog.Purchase{ProductID: 1, Price: 1000})

	c := newCallbackCtx(20, cbViewProduct, "1")
	require.NoError(t, f.app.cbViewProduct(c))

	assert.False(t, f.app.dialogs.InProgress(20))
}
