package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"orderflow/internal/core/application/audit"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArchiveStore struct{ mock.Mock }

func (m *MockArchiveStore) Put(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}

func newNotifier(t *testing.T, store *MockArchiveStore) *audit.Notifier {
	t.Helper()

	notifier, err := audit.NewNotifier(
		store,
		metrics.NewCollector("orderflow_test", prometheus.NewRegistry()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return notifier
}

func finalizedSnapshot() order.Snapshot {
	return order.Snapshot{
		TenantID:    "restaurante-central",
		OrderID:     "ORD-1756710000000",
		Status:      "DELIVERED",
		CurrentStep: "delivered",
		Total:       18.0,
		Items: []order.ItemSnapshot{
			{ProductID: "arroz-chaufa", Quantity: 1, Price: 18.0},
		},
	}
}

func TestNotifier_Archive(t *testing.T) {
	ctx := t.Context()

	t.Run("should write snapshot under order-derived key", func(t *testing.T) {
		store := new(MockArchiveStore)
		var body []byte
		store.On("Put", mock.Anything, "orders/ORD-1756710000000.json", mock.Anything).
			Run(func(args mock.Arguments) {
				body = args.Get(2).([]byte)
			}).
			Return(nil).Once()

		err := newNotifier(t, store).Archive(ctx, finalizedSnapshot())

		require.NoError(t, err)
		store.AssertExpectations(t)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, "DELIVERED", decoded["status"])
		assert.Equal(t, "ORD-1756710000000", decoded["orderId"])
	})

	t.Run("should write the same key on redelivery", func(t *testing.T) {
		store := new(MockArchiveStore)
		store.On("Put", mock.Anything, "orders/ORD-1756710000000.json", mock.Anything).
			Return(nil).Twice()

		notifier := newNotifier(t, store)
		require.NoError(t, notifier.Archive(ctx, finalizedSnapshot()))
		require.NoError(t, notifier.Archive(ctx, finalizedSnapshot()))
		store.AssertExpectations(t)
	})

	t.Run("should surface store failure for redelivery", func(t *testing.T) {
		store := new(MockArchiveStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError).Once()

		err := newNotifier(t, store).Archive(ctx, finalizedSnapshot())

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("should reject snapshot without order id", func(t *testing.T) {
		store := new(MockArchiveStore)

		err := newNotifier(t, store).Archive(ctx, order.Snapshot{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})
}
