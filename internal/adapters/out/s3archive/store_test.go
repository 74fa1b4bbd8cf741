package s3archive

import (
	"context"
	"io"
	"testing"

	"orderflow/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	calls  int
	err    error
	bucket string
	key    string
	body   []byte
}

func (f *fakeObjectAPI) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	f.bucket = *params.Bucket
	f.key = *params.Key
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestStore_Put(t *testing.T) {
	ctx := t.Context()

	t.Run("should write object with json content type", func(t *testing.T) {
		api := &fakeObjectAPI{}
		store, err := newStore(api, "audit-bucket")
		require.NoError(t, err)

		err = store.Put(ctx, "orders/ORD-1.json", []byte(`{"status":"DELIVERED"}`))

		require.NoError(t, err)
		assert.Equal(t, "audit-bucket", api.bucket)
		assert.Equal(t, "orders/ORD-1.json", api.key)
		assert.JSONEq(t, `{"status":"DELIVERED"}`, string(api.body))
	})

	t.Run("should overwrite on repeated key", func(t *testing.T) {
		api := &fakeObjectAPI{}
		store, err := newStore(api, "audit-bucket")
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "orders/ORD-1.json", []byte(`{"v":1}`)))
		require.NoError(t, store.Put(ctx, "orders/ORD-1.json", []byte(`{"v":2}`)))

		assert.Equal(t, 2, api.calls)
		assert.JSONEq(t, `{"v":2}`, string(api.body))
	})

	t.Run("should open breaker after consecutive failures", func(t *testing.T) {
		api := &fakeObjectAPI{err: assert.AnError}
		store, err := newStore(api, "audit-bucket")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			assert.ErrorIs(t, store.Put(ctx, "orders/ORD-1.json", nil), assert.AnError)
		}

		err = store.Put(ctx, "orders/ORD-1.json", nil)
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, 5, api.calls, "open breaker must not reach storage")
	})

	t.Run("should reject empty key", func(t *testing.T) {
		api := &fakeObjectAPI{}
		store, err := newStore(api, "audit-bucket")
		require.NoError(t, err)

		assert.ErrorIs(t, store.Put(ctx, "", nil), errs.ErrValueIsRequired)
		assert.Zero(t, api.calls)
	})

	t.Run("should require bucket", func(t *testing.T) {
		_, err := newStore(&fakeObjectAPI{}, "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
