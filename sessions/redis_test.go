package sessions

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/support-chat/types"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)

	store, err := NewStore(StoreTypeRedis, WithRedisClient(client), WithTTL(time.Minute))
	require.NoError(t, err)
	defer store.Close()

	id := "test-" + uuid.NewString()
	defer store.Delete(ctx, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	state := types.NewSessionState(id)
	state.MessageCounts["hi"] = 3
	state.VagueModeActive = true
	state.VagueMessageCount = 1
	require.NoError(t, store.Put(ctx, state))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.MessageCounts["hi"])
	assert.True(t, got.VagueModeActive)
	assert.NotNil(t, got.UsedResponses)

	ttl, err := client.TTL(ctx, sessionKeyPrefix+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, id))
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
