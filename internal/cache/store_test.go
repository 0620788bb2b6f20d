package cache

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRemember(t *testing.T) {
	store := NewMemoryStore()

	calls := 0
	producer := func() ([]byte, error) {
		calls++
		return []byte(`{"n":1}`), nil
	}

	t.Run("MissProducesAndStores", func(t *testing.T) {
		got, err := store.Remember("k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"n":1}`), got)
		assert.Equal(t, 1, calls)
	})

	t.Run("HitSkipsProducer", func(t *testing.T) {
		got, err := store.Remember("k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"n":1}`), got)
		assert.Equal(t, 1, calls)
	})

	t.Run("ProducerErrorNotCached", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := store.Remember("bad", time.Minute, func() ([]byte, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := store.Remember("bad", time.Minute, func() ([]byte, error) {
			return []byte("ok"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), got)
	})
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	calls := 0
	producer := func() ([]byte, error) {
		calls++
		return []byte("v"), nil
	}

	_, err := store.Remember("k", 5*time.Minute, producer)
	require.NoError(t, err)

	now = now.Add(4 * time.Minute)
	_, err = store.Remember("k", 5*time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = store.Remember("k", 5*time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoryStoreForgetAndFlush(t *testing.T) {
	store := NewMemoryStore()

	seed := func(key string) {
		_, err := store.Remember(key, time.Minute, func() ([]byte, error) {
			return []byte(key), nil
		})
		require.NoError(t, err)
	}
	seed("a")
	seed("b")
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Forget("a"))
	assert.Equal(t, 1, store.Len())

	// forgetting a missing key is not an error
	require.NoError(t, store.Forget("a"))

	require.NoError(t, store.Flush())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreSweepDropsExpiredEntries(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		key := "list_" + strconv.Itoa(i)
		_, err := store.Remember(key, time.Second, func() ([]byte, error) {
			return []byte("v"), nil
		})
		require.NoError(t, err)
	}
	_, err := store.Remember("durable", 2*time.Hour, func() ([]byte, error) {
		return []byte("v"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1001, store.Len())

	now = now.Add(time.Hour)
	store.sweep()

	assert.Equal(t, 1, store.Len())
	got, err := store.Remember("durable", 2*time.Hour, func() ([]byte, error) {
		return nil, errors.New("must not be called")
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryStoreClose(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())
}
