package instance_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	redisstore "github.com/taibuivan/locallibrary/internal/platform/redis"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

/*
TestRedisFeed round-trips transitions through a capped stream. It needs a
reachable server in REDIS_URL.
*/
func TestRedisFeed(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redisstore.NewClient(ctx, redisURL, testutil.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	stream := "locallibrary:test:" + uuid.New()
	t.Cleanup(func() { _ = client.Del(context.Background(), stream).Err() })

	feed := instance.NewRedisFeed(client, stream, 100)
	bookID := int64(7)
	due := date.MustParse("2026-11-01")
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	require.NoError(t, feed.Publish(ctx, instance.Transition{
		InstanceID: "first", BookID: &bookID, From: instance.StatusMaintenance, To: instance.StatusOnLoan, DueBack: &due, At: at,
	}))
	require.NoError(t, feed.Publish(ctx, instance.Transition{
		InstanceID: "second", From: instance.StatusOnLoan, To: instance.StatusAvailable, At: at.Add(time.Minute),
	}))

	recent, err := feed.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "second", recent[0].InstanceID)
	assert.Nil(t, recent[0].BookID)
	assert.Nil(t, recent[0].DueBack)

	assert.Equal(t, "first", recent[1].InstanceID)
	assert.Equal(t, &bookID, recent[1].BookID)
	assert.Equal(t, &due, recent[1].DueBack)
	assert.True(t, at.Equal(recent[1].At))
}

/*
TestNoopFeed accepts and returns nothing.
*/
func TestNoopFeed(t *testing.T) {
	feed := instance.NoopFeed{}
	assert.NoError(t, feed.Publish(context.Background(), instance.Transition{}))

	recent, err := feed.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
