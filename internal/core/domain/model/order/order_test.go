package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID string, quantity int, price float64) order.Item {
	t.Helper()
	item, err := order.NewItem(productID, quantity, price)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) (*order.Order, kernel.Token) {
	t.Helper()
	token := kernel.NewToken()
	items := []order.Item{mustItem(t, "chaufa", 2, 12.5)}
	o, err := order.NewOrder("demo", kernel.NewOrderID(), items, 25.0, nil, token)
	require.NoError(t, err)
	return o, token
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_order_in_created_status", func(t *testing.T) {
		// Given
		token := kernel.NewToken()
		customer, err := order.NewCustomer("u1", "Maria", "Av. Principal 123")
		require.NoError(t, err)
		items := []order.Item{mustItem(t, "chaufa", 2, 12.5)}

		// When
		o, err := order.NewOrder("demo", kernel.NewOrderID(), items, 25.0, &customer, token)

		// Then
		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, "order_received", o.CurrentStep())
		assert.Equal(t, "demo", o.TenantID())
		assert.InDelta(t, 25.0, o.Total(), 0.001)
		require.NotNil(t, o.ResumptionToken())
		assert.True(t, o.ResumptionToken().Matches(token))
		assert.Equal(t, "u1", o.Customer().UserID())
	})

	t.Run("rejects_missing_items", func(t *testing.T) {
		// When
		_, err := order.NewOrder("demo", kernel.NewOrderID(), nil, 0, nil, kernel.NewToken())

		// Then
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_missing_tenant", func(t *testing.T) {
		items := []order.Item{mustItem(t, "chaufa", 1, 12.5)}
		_, err := order.NewOrder("", kernel.NewOrderID(), items, 12.5, nil, kernel.NewToken())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_negative_total", func(t *testing.T) {
		items := []order.Item{mustItem(t, "chaufa", 1, 12.5)}
		_, err := order.NewOrder("demo", kernel.NewOrderID(), items, -1, nil, kernel.NewToken())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_final_sentinel_as_initial_token", func(t *testing.T) {
		items := []order.Item{mustItem(t, "chaufa", 1, 12.5)}
		_, err := order.NewOrder("demo", kernel.NewOrderID(), items, 12.5, nil, kernel.FinalToken())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	items := []order.Item{mustItem(t, "wantan", 3, 5.0)}
	id := kernel.NewOrderID()
	now := time.Now().UTC()

	t.Run("restores_non_terminal_with_token", func(t *testing.T) {
		token := kernel.NewToken()

		// When
		o, err := order.RestoreOrder("demo", id, order.Cooking, order.Cooking.StepTag(),
			items, 15.0, nil, &token, now)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Cooking, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("restores_terminal_without_token", func(t *testing.T) {
		o, err := order.RestoreOrder("demo", id, order.Delivered, order.Delivered.StepTag(),
			items, 15.0, nil, nil, now)
		require.NoError(t, err)
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("rejects_terminal_with_token", func(t *testing.T) {
		token := kernel.NewToken()
		_, err := order.RestoreOrder("demo", id, order.Delivered, order.Delivered.StepTag(),
			items, 15.0, nil, &token, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_non_terminal_without_token", func(t *testing.T) {
		_, err := order.RestoreOrder("demo", id, order.Packed, order.Packed.StepTag(),
			items, 15.0, nil, nil, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		token := kernel.NewToken()
		_, err := order.RestoreOrder("demo", id, order.Unknown, "", items, 15.0, nil, &token, now)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil_is_not_constructed", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AuthorizeSignal(t *testing.T) {
	t.Run("matching_token_is_authorized", func(t *testing.T) {
		// Given
		o, token := newTestOrder(t)

		// When
		err := o.AuthorizeSignal(token)

		// Then
		require.NoError(t, err)
	})

	t.Run("stale_token_is_rejected", func(t *testing.T) {
		// Given
		o, _ := newTestOrder(t)

		// When
		err := o.AuthorizeSignal(kernel.NewToken())

		// Then
		require.ErrorIs(t, err, errs.ErrTokenMismatch)
	})

	t.Run("terminal_order_has_nothing_to_resume", func(t *testing.T) {
		// Given
		items := []order.Item{mustItem(t, "chaufa", 1, 12.5)}
		o, err := order.RestoreOrder("demo", kernel.NewOrderID(), order.Delivered,
			order.Delivered.StepTag(), items, 12.5, nil, nil, time.Now())
		require.NoError(t, err)

		// When
		err = o.AuthorizeSignal(kernel.NewToken())

		// Then
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_Items_ReturnsCopy(t *testing.T) {
	o, _ := newTestOrder(t)

	items := o.Items()
	items[0] = order.Item{}

	assert.Equal(t, "chaufa", o.Items()[0].ProductID())
}

func TestOrder_Snapshot(t *testing.T) {
	t.Run("flattens_aggregate", func(t *testing.T) {
		// Given
		customer, err := order.NewCustomer("u1", "Maria", "Av. Principal 123")
		require.NoError(t, err)
		token := kernel.NewToken()
		items := []order.Item{mustItem(t, "chaufa", 2, 12.5)}
		o, err := order.NewOrder("demo", kernel.NewOrderID(), items, 25.0, &customer, token)
		require.NoError(t, err)

		// When
		snap := o.Snapshot()

		// Then
		assert.Equal(t, "demo", snap.TenantID)
		assert.Equal(t, o.ID().String(), snap.OrderID)
		assert.Equal(t, "CREATED", snap.Status)
		assert.Equal(t, "order_received", snap.CurrentStep)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, "chaufa", snap.Items[0].ProductID)
		assert.Equal(t, 2, snap.Items[0].Quantity)
		require.NotNil(t, snap.Customer)
		assert.Equal(t, "u1", snap.Customer.UserID)
		assert.Nil(t, snap.UpdatedAt, "freshly created order has no persisted timestamp")
	})

	t.Run("missing_timestamp_sorts_as_epoch", func(t *testing.T) {
		o, _ := newTestOrder(t)
		snap := o.Snapshot()
		assert.Equal(t, time.Unix(0, 0).UTC(), snap.UpdatedAtOrEpoch())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("rejects_empty_product", func(t *testing.T) {
		_, err := order.NewItem("", 1, 1.0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := order.NewItem("chaufa", 0, 1.0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		_, err := order.NewItem("chaufa", 1, -0.5)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewCustomer(t *testing.T) {
	t.Run("requires_user_id", func(t *testing.T) {
		_, err := order.NewCustomer("", "Maria", "Av. Principal 123")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("name_and_address_are_optional", func(t *testing.T) {
		c, err := order.NewCustomer("u1", "", "")
		require.NoError(t, err)
		assert.Equal(t, "u1", c.UserID())
	})
}
