package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus/student-registration/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, Config) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, Config{Addr: mr.Addr()}
}

func TestConnect_PingsServer(t *testing.T) {
	_, cfg := newTestClient(t)

	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, NewPinger(client).Ping(context.Background()))
}

func TestConnect_FailsWhenUnreachable(t *testing.T) {
	mr, cfg := newTestClient(t)
	mr.Close()

	_, err := Connect(context.Background(), Config{Addr: cfg.Addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestSessionStore_SaveLookupDelete(t *testing.T) {
	mr, cfg := newTestClient(t)
	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "alice", time.Hour))
	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	username, err := store.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Lookup(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "abc"))
}

func TestSessionStore_Expires(t *testing.T) {
	mr, cfg := newTestClient(t)
	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", "bob", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err = store.Lookup(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_StoreFailure(t *testing.T) {
	mr, cfg := newTestClient(t)
	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	mr.SetError("server down")
	_, err = NewSessionStore(client).Lookup(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestDenylist(t *testing.T) {
	mr, cfg := newTestClient(t)
	client, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	deny := NewDenylist(client)
	ctx := context.Background()

	ok, err := deny.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, deny.Add(ctx, "jti-1", 10*time.Minute))
	ok, err = deny.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, deny.Add(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("revoked:jti-2"))

	mr.FastForward(11 * time.Minute)
	ok, err = deny.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
