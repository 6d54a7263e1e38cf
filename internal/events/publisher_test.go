// Package events_test provides tests for the events package.
package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukadigital/content-hub/internal/events"
	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
)

func setupPublisher(t *testing.T) (*events.Publisher, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return events.NewPublisher(client, logger.NewNop()), client
}

func TestNewPublisher_RequiresClient(t *testing.T) {
	pub := events.NewPublisher(nil, nil)
	assert.Nil(t, pub)
}

func TestPublisher_Publish(t *testing.T) {
	pub, client := setupPublisher(t)
	ctx := context.Background()

	err := pub.Publish(ctx, events.ResolutionEvent{
		EventType: events.ResolutionDegraded,
		Tenant:    "pukadigital",
		Source:    models.SourceFallback,
		Reason:    "content api returned status 500",
	})
	require.NoError(t, err)

	entries, err := client.XRange(ctx, events.StreamName, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, ok := entries[0].Values["event"].(string)
	require.True(t, ok)

	var got events.ResolutionEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, events.ResolutionDegraded, got.EventType)
	assert.Equal(t, "pukadigital", got.Tenant)
	assert.Equal(t, models.SourceFallback, got.Source)
	assert.NotZero(t, got.EventID, "publisher should assign an event id")
	assert.False(t, got.Timestamp.IsZero(), "publisher should assign a timestamp")
}

func TestPublisher_Publish_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher
	err := pub.Publish(context.Background(), events.ResolutionEvent{
		EventType: events.ResolutionRecovered,
		Tenant:    "pukadigital",
	})
	assert.NoError(t, err)
}

func TestPublisher_PublishAsync_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher
	// Should not panic.
	pub.PublishAsync(events.ResolutionEvent{EventType: events.ResolutionDegraded})
}
