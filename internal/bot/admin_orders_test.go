package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/models"
)

func seedPendingOrder(f *testFixture, userID, productID, price int64) int64 {
	f.orders.nextID++
	id := f.orders.nextID
	o := &models.Order{
		ID: id, UserID: userID, ProductID: productID, Price: price,
		Status: models.OrderPending, ProductName: "محصول تست",
	}
	o.ScreenshotFileID.Valid, o.ScreenshotFileID.String = true, "shot"
	f.orders.orders[id] = o
	return id
}

func TestApproveOrderCallback(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)
	app := f.app
	orderID := seedPendingOrder(f, 20, 7, 50000)

	c := newCallbackCtx(999, cbAdminApproveOrder, fmt.Sprint(orderID))
	require.NoError(t, app.cbAdminApproveOrder(c))

	assert.Equal(t, models.OrderApproved, f.orders.orders[orderID].Status)
	assert.Equal(t, int64(999), f.orders.orders[orderID].AdminID.Int64)
	require.NotEmpty(t, c.responds)
	assert.Contains(t, c.responds[len(c.responds)-1].Text, "تایید")
	assert.Contains(t, c.lastText(), fmt.Sprintf("#%d", orderID))
}

func TestRejectOrderCallback(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)
	app := f.app
	orderID := seedPendingOrder(f, 20, 7, 50000)

	c := newCallbackCtx(999, cbAdminRejectOrder, fmt.Sprint(orderID))
	require.NoError(t, app.cbAdminRejectOrder(c))

	order := f.orders.orders[orderID]
	assert.Equal(t, models.OrderRejected, order.Status)
	assert.Equal(t, "rejected by admin", order.RejectionReason.String)
}

func TestCrossDecisionCallbackKeepsFirstOutcome(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)
	app := f.app
	orderID := seedPendingOrder(f, 20, 7, 50000)

	require.NoError(t, app.cbAdminApproveOrder(newCallbackCtx(999, cbAdminApproveOrder, fmt.Sprint(orderID))))

	c := newCallbackCtx(999, cbAdminRejectOrder, fmt.Sprint(orderID))
	require.NoError(t, app.cbAdminRejectOrder(c))

	assert.Equal(t, models.OrderApproved, f.orders.orders[orderID].Status)
	require.NotEmpty(t, c.responds)
	assert.Contains(t, c.responds[0].Text, "قبلاً")
}

func TestDecideUnknownOrderCallback(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)

	c := newCallbackCtx(999, cbAdminApproveOrder, "424242")
	require.NoError(t, f.app.cbAdminApproveOrder(c))

	require.NotEmpty(t, c.responds)
	assert.Contains(t, c.responds[0].Text, "یافت نشد")
}

func TestPendingOrdersEmptyQueue(t *testing.T) {
	f := newTestApp()
	f.seedUser(999, true)

	c := newCallbackCtx(999, cbAdminOrders, "")
	require.NoError(t, f.app.cbAdminOrders(c))

	assert.Contains(t, c.lastText(), "وجود ندارد")
}
