package push

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendReachesSubscribers(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	ch, cleanup := hub.Subscribe("token-1")
	defer cleanup()

	err := hub.Send(context.Background(), "token-1", "Payslip Ready", "Your payslip is ready", map[string]interface{}{"period": "2025-06"})
	require.NoError(t, err)

	msg := <-ch
	assert.Equal(t, "token-1", msg.Token)
	assert.Equal(t, "Payslip Ready", msg.Title)
	assert.Equal(t, "2025-06", msg.Data["period"])
}

func TestHub_SendToUnknownTokenIsNoOp(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	err := hub.Send(context.Background(), "nobody", "title", "body", nil)
	assert.NoError(t, err)
}

func TestHub_FullSubscriberIsSkipped(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	ch, cleanup := hub.Subscribe("token-1")
	defer cleanup()

	// Channel capacity is 10; the extra sends must not block.
	for i := 0; i < 15; i++ {
		require.NoError(t, hub.Send(context.Background(), "token-1", "title", "body", nil))
	}
	assert.Len(t, ch, 10)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	_, cleanup := hub.Subscribe("token-1")
	assert.Equal(t, 1, hub.SubscriberCount("token-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("token-1"))
}
