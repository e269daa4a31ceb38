package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-laravel-input/framework/session"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	s := session.New(time.Hour)
	s.Set("k", "v")
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "v", got.Data["k"])

	// stored copy is isolated from later mutations
	s.Set("k", "changed")
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "v", got.Data["k"])

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	s := session.New(-time.Minute)
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.Zero(t, store.Len())
}

func TestMemoryStore_Invalid(t *testing.T) {
	assert.ErrorIs(t, session.NewMemoryStore().Save(context.Background(), &session.Session{}), session.ErrInvalidSession)
}

func TestRedisStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := session.NewRedisStore(client, "", time.Hour)

	s := &session.Session{
		ID:        "abc",
		Data:      map[string]any{"k": "v"},
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectSet("session:abc", raw, time.Hour).SetVal("OK")
	require.NoError(t, store.Save(ctx, s))

	mock.ExpectGet("session:abc").SetVal(string(raw))
	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Data["k"])

	mock.ExpectDel("session:abc").SetVal(1)
	require.NoError(t, store.Delete(ctx, "abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_NotFound(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := session.NewRedisStore(client, "s:", time.Hour)

	mock.ExpectGet("s:missing").RedisNil()
	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Corrupt(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := session.NewRedisStore(client, "", time.Hour)

	mock.ExpectGet("session:bad").SetVal("{not json")
	_, err := store.Get(context.Background(), "bad")

	assert.ErrorIs(t, err, session.ErrInvalidSession)
}
