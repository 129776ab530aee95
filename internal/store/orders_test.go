package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
	"github.com/kiwari-pos/floor/internal/store"
)

func menuItem(t *testing.T, s *store.Store, id string) model.MenuItem {
	t.Helper()
	m, ok := s.MenuItem(id)
	require.True(t, ok, "menu item %s", id)
	return m
}

func TestUpdateOrderStatus_OnlyTargetChanges(t *testing.T) {
	s := newStore(t)
	before := s.Orders()

	require.True(t, s.UpdateOrderStatus("order1", enum.OrderStatusReady))

	after := s.Orders()
	require.Len(t, after, len(before))
	for i := range after {
		if after[i].ID != "order1" {
			assert.Equal(t, before[i], after[i])
			continue
		}
		assert.Equal(t, enum.OrderStatusReady, after[i].Status)
		assert.False(t, after[i].UpdatedAt.Before(before[i].UpdatedAt))
		assert.Equal(t, before[i].Items, after[i].Items)
	}

	ready := s.OrdersByStatus(enum.OrderStatusReady)
	ids := []string{}
	for _, o := range ready {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []string{"order1", "order3"}, ids)
}

func TestUpdateOrderStatus_SameStatusRefreshesTimestamp(t *testing.T) {
	s := newStore(t)
	prev, _ := s.Order("order2")

	require.True(t, s.UpdateOrderStatus("order2", enum.OrderStatusWaitList))

	o, _ := s.Order("order2")
	assert.Equal(t, enum.OrderStatusWaitList, o.Status)
	assert.True(t, o.UpdatedAt.After(prev.UpdatedAt))
}

func TestUpdateOrderStatus_ClockBehindKeepsTimestamp(t *testing.T) {
	s := newStore(t, store.WithClock(func() time.Time { return baseTime.Add(-time.Hour) }))
	prev, _ := s.Order("order2")

	require.True(t, s.UpdateOrderStatus("order2", enum.OrderStatusInKitchen))

	o, _ := s.Order("order2")
	assert.Equal(t, prev.UpdatedAt, o.UpdatedAt)
}

func TestUpdateOrderStatus_UnknownID(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, store.WithNotifier(rec))
	before := s.Orders()

	assert.False(t, s.UpdateOrderStatus("order404", enum.OrderStatusReady))
	assert.Equal(t, before, s.Orders())
	assert.Empty(t, rec.kinds())
}

func TestUpdateOrderStatus_Notifies(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, store.WithNotifier(rec))

	require.True(t, s.UpdateOrderStatus("order1", enum.OrderStatusReady))

	require.Len(t, rec.notes, 1)
	n := rec.notes[0]
	assert.Equal(t, "order.status_updated", n.Kind)
	assert.Equal(t, "order", n.Entity)
	assert.Equal(t, "order1", n.EntityID)
	assert.Equal(t, "Order status updated to ready", n.Message)
}

func TestAdvanceOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		next    enum.OrderStatus
		wantErr error
	}{
		{"kitchen to ready", "order1", enum.OrderStatusReady, nil},
		{"wait list to kitchen", "order2", enum.OrderStatusInKitchen, nil},
		{"ready to served", "order3", enum.OrderStatusServed, nil},
		{"ready cannot go back", "order3", enum.OrderStatusInKitchen, store.ErrInvalidTransition},
		{"kitchen cannot skip", "order1", enum.OrderStatusCompleted, store.ErrInvalidTransition},
		{"unknown order", "order9", enum.OrderStatusReady, store.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			before, _ := s.Order(tt.id)

			o, err := s.AdvanceOrderStatus(tt.id, tt.next)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				after, _ := s.Order(tt.id)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, o.Status)
		})
	}
}

func TestOpenOrder(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, store.WithNotifier(rec))

	o, err := s.OpenOrder(store.NewOrder{TableID: "table11", CustomerName: "Ali"})
	require.NoError(t, err)

	assert.Equal(t, "order-4", o.ID)
	assert.Equal(t, "#11", o.TableNumber)
	assert.Equal(t, enum.OrderStatusNew, o.Status)
	assert.Empty(t, o.Items)
	assert.True(t, o.Total.IsZero())
	assert.Len(t, s.OrdersByTable("table11"), 1)
	assert.Equal(t, []string{"order.opened"}, rec.kinds())

	takeAway, err := s.OpenOrder(store.NewOrder{TableID: "table11", Status: enum.OrderStatusTakeAway})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusTakeAway, takeAway.Status)
}

func TestOpenOrder_Rejected(t *testing.T) {
	s := newStore(t)

	_, err := s.OpenOrder(store.NewOrder{TableID: "table1", Status: enum.OrderStatusReady})
	assert.ErrorIs(t, err, store.ErrInvalidInitialStatus)

	_, err = s.OpenOrder(store.NewOrder{TableID: "table99"})
	assert.ErrorIs(t, err, store.ErrTableNotFound)

	assert.Len(t, s.Orders(), 3)
}

func TestAddItemToOrder_MergesAndRecomputes(t *testing.T) {
	s := newStore(t)
	steak := menuItem(t, s, "item4")

	o, ok := s.AddItemToOrder("order2", store.NewOrderItem{MenuItem: steak, Quantity: 2})
	require.True(t, ok)
	require.Len(t, o.Items, 2)
	assert.NotEmpty(t, o.Items[1].ID)
	assert.True(t, decimal.NewFromInt(36+60).Equal(o.Total), "total = %s", o.Total)

	o, ok = s.AddItemToOrder("order2", store.NewOrderItem{MenuItem: steak, Quantity: 1})
	require.True(t, ok)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 3, o.Items[1].Quantity)
	assert.True(t, decimal.NewFromInt(36+90).Equal(o.Total), "total = %s", o.Total)

	o, ok = s.AddItemToOrder("order2", store.NewOrderItem{MenuItem: steak, Quantity: 1, SpecialInstructions: "well done"})
	require.True(t, ok)
	assert.Len(t, o.Items, 3, "different instructions start a new line")
}

func TestAddItemToOrder_Ignored(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
		qty     int
		setup   func(s *store.Store)
	}{
		{"zero quantity", "order1", 0, nil},
		{"negative quantity", "order1", -1, nil},
		{"unknown order", "order404", 1, nil},
		{"cancelled order", "order1", 1, func(s *store.Store) { s.UpdateOrderStatus("order1", enum.OrderStatusCancelled) }},
		{"completed order", "order1", 1, func(s *store.Store) { s.UpdateOrderStatus("order1", enum.OrderStatusCompleted) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if tt.setup != nil {
				tt.setup(s)
			}
			before := s.Orders()

			_, ok := s.AddItemToOrder(tt.orderID, store.NewOrderItem{MenuItem: menuItem(t, s, "item5"), Quantity: tt.qty})
			assert.False(t, ok)
			assert.Equal(t, before, s.Orders())
		})
	}
}

func TestAddOrderItem_UsesSelectedOrder(t *testing.T) {
	s := newStore(t)
	soup := menuItem(t, s, "item5")

	assert.False(t, s.AddOrderItem(soup, 1), "no order selected")

	require.True(t, s.SelectOrder("order3"))
	require.True(t, s.AddOrderItem(soup, 2))

	o, _ := s.Order("order3")
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Shrimp Rice Bowl", o.Items[1].Name)
	assert.True(t, decimal.NewFromInt(30+12).Equal(o.Total))
}

func TestRemoveOrderItem(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, store.WithNotifier(rec))

	require.True(t, s.RemoveOrderItem("oi2"))

	o, _ := s.Order("order2")
	assert.Empty(t, o.Items)
	assert.True(t, o.Total.IsZero())
	assert.Equal(t, []string{"order.item_removed"}, rec.kinds())

	assert.False(t, s.RemoveOrderItem("oi2"))
	assert.False(t, s.RemoveOrderItem(""))
}

func TestRemoveOrderItem_ClosedOrder(t *testing.T) {
	s := newStore(t)
	require.True(t, s.UpdateOrderStatus("order1", enum.OrderStatusCompleted))

	assert.False(t, s.RemoveOrderItem("oi1"))
	o, _ := s.Order("order1")
	assert.Len(t, o.Items, 1)
}

func TestSettleOrder(t *testing.T) {
	s := newStore(t)

	o, err := s.SettleOrder("order1", enum.PaymentMethodCard, decimal.NewFromInt(80))
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusCompleted, o.Status)
	assert.True(t, o.Paid())
	require.NotNil(t, o.PaymentMethod)
	assert.Equal(t, enum.PaymentMethodCard, *o.PaymentMethod)

	_, err = s.SettleOrder("order1", enum.PaymentMethodCash, decimal.NewFromInt(80))
	assert.ErrorIs(t, err, store.ErrOrderNotPayable)
}

func TestSettleOrder_Rejected(t *testing.T) {
	s := newStore(t)

	_, err := s.SettleOrder("order404", enum.PaymentMethodCash, decimal.Zero)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)

	require.True(t, s.UpdateOrderStatus("order2", enum.OrderStatusCancelled))
	_, err = s.SettleOrder("order2", enum.PaymentMethodCash, decimal.Zero)
	assert.ErrorIs(t, err, store.ErrOrderNotPayable)

	empty, err := s.OpenOrder(store.NewOrder{TableID: "table1"})
	require.NoError(t, err)
	_, err = s.SettleOrder(empty.ID, enum.PaymentMethodCash, decimal.Zero)
	assert.ErrorIs(t, err, store.ErrOrderNotPayable)

	// Billed before the last line was added.
	_, ok := s.AddItemToOrder("order1", store.NewOrderItem{MenuItem: menuItem(t, s, "item2"), Quantity: 1})
	require.True(t, ok)
	_, err = s.SettleOrder("order1", enum.PaymentMethodCard, decimal.NewFromInt(80))
	assert.ErrorIs(t, err, store.ErrOrderChanged)
	o, _ := s.Order("order1")
	assert.False(t, o.Paid())
	assert.Equal(t, enum.OrderStatusInKitchen, o.Status)
}
