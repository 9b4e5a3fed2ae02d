package ordering

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
	"github.com/example/wingkiosk/pkg/pricing"
	"github.com/example/wingkiosk/pkg/session"
)

func setupService(t *testing.T) (*Service, *memOrderStore, *session.Gate) {
	t.Helper()
	orders := newMemOrderStore()
	gate := session.NewGate(session.NewMemoryStore(), time.Hour)
	svc := NewService(orders, gate, zap.NewNop())
	return svc, orders, gate
}

func cart(qty int) []pricing.LineItem {
	return []pricing.LineItem{
		{Name: "Wings", Quantity: qty, Price: decimal.NewFromInt(100)},
	}
}

func TestCreateAlaCarteOrder(t *testing.T) {
	svc, orders, _ := setupService(t)

	order, err := svc.Create(context.Background(), CreateRequest{
		Items:      cart(2),
		OrderType:  models.AlaCarte,
		DiningType: models.TakeOut,
		SessionKey: "kiosk:t1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "200", models.FromDecimal128(order.Subtotal).String())
	assert.Equal(t, "24", models.FromDecimal128(order.Tax).String())
	assert.Equal(t, "224", models.FromDecimal128(order.Total).String())

	n, err := strconv.Atoi(order.OrderNumber)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1000)
	assert.LessOrEqual(t, n, 9999)

	saved, err := orders.GetByOrderNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.StockApplied)
	assert.Len(t, saved.Items, 1)
	assert.Equal(t, "Wings", saved.Items[0].ItemName)
}

func TestCreateUnlimitedOrderChargesPerHead(t *testing.T) {
	svc, _, _ := setupService(t)

	order, err := svc.Create(context.Background(), CreateRequest{
		Items:       cart(12), // quantities over the à-la-carte cap are fine here
		OrderType:   models.Unlimited,
		DiningType:  models.DineIn,
		TableNumber: "7",
		PersonCount: 3,
		SessionKey:  session.TableKey("7"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1131", models.FromDecimal128(order.Subtotal).String())
	assert.Equal(t, "135.72", models.FromDecimal128(order.Tax).String())
	assert.Equal(t, "1266.72", models.FromDecimal128(order.Total).String())
	assert.Equal(t, "7", order.TableNumber)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{OrderType: models.AlaCarte, SessionKey: "k"})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(ctx, CreateRequest{Items: cart(0), OrderType: models.AlaCarte, SessionKey: "k"})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(ctx, CreateRequest{Items: cart(6), OrderType: models.AlaCarte, SessionKey: "k"})
	assert.ErrorIs(t, err, ErrQuantityLimit)
}

func TestCreateRejectsExpiredSession(t *testing.T) {
	orders := newMemOrderStore()
	store := session.NewMemoryStore()
	gate := session.NewGate(store, time.Hour)
	svc := NewService(orders, gate, zap.NewNop())
	ctx := context.Background()

	started := time.Now().UTC().Add(-61 * time.Minute)
	require.NoError(t, store.SetStart(ctx, "kiosk:old", started, 0))

	_, err := svc.Create(ctx, CreateRequest{
		Items:      cart(1),
		OrderType:  models.AlaCarte,
		SessionKey: "kiosk:old",
	})
	require.Error(t, err)

	var expired *session.ExpiredError
	require.ErrorAs(t, err, &expired)
	assert.Equal(t, started, expired.StartedAt)
}

func TestNextOrderNumberRetriesOnCollision(t *testing.T) {
	svc, orders, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, orders.Create(ctx, &models.Order{OrderNumber: "1234", Status: models.StatusPending}))

	draws := []string{"1234", "1234", "5678"}
	svc.drawNumber = func() string {
		d := draws[0]
		if len(draws) > 1 {
			draws = draws[1:]
		}
		return d
	}

	order, err := svc.Create(ctx, CreateRequest{
		Items:      cart(1),
		OrderType:  models.AlaCarte,
		SessionKey: "k",
	})
	require.NoError(t, err)
	assert.Equal(t, "5678", order.OrderNumber)
}

func TestNextOrderNumberExhausted(t *testing.T) {
	svc, orders, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, orders.Create(ctx, &models.Order{OrderNumber: "1234", Status: models.StatusPending}))
	svc.drawNumber = func() string { return "1234" }

	_, err := svc.Create(ctx, CreateRequest{
		Items:      cart(1),
		OrderType:  models.AlaCarte,
		SessionKey: "k",
	})
	assert.ErrorIs(t, err, ErrNumbersExhausted)
}

func TestStatusDegradesToEmptyWhenUnknown(t *testing.T) {
	svc, orders, _ := setupService(t)
	ctx := context.Background()

	status, err := svc.Status(ctx, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.Status(""), status)

	require.NoError(t, orders.Create(ctx, &models.Order{OrderNumber: "4321", Status: models.StatusInProgress}))
	status, err = svc.Status(ctx, "4321")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)
}
