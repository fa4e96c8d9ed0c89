package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus/student-registration/internal/core/domain"
	redisdb "github.com/campus/student-registration/internal/infrastructure/db/redis"
)

func TestRedisAuthority_WithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redisdb.Connect(context.Background(), redisdb.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	auth := NewRedisAuthority(redisdb.NewSessionStore(client), 30*time.Minute)
	ctx := context.Background()

	token, err := auth.Issue(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+HashToken(token)))

	username, err := auth.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	mr.FastForward(31 * time.Minute)
	_, err = auth.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestJWTAuthority_WithRedisDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redisdb.Connect(context.Background(), redisdb.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	auth := NewJWTAuthority("secret", time.Hour, redisdb.NewDenylist(client))
	ctx := context.Background()

	token, err := auth.Issue(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, auth.Revoke(ctx, token))

	_, err = auth.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Len(t, mr.Keys(), 1)
}
