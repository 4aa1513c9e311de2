package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishCompletion(context.Background(), CompletionEvent{MissionID: "1"}))
	assert.NoError(t, p.Close())
}

func TestCompletionEventJSON(t *testing.T) {
	at := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	body, err := json.Marshal(CompletionEvent{MissionID: "6", UID: "u1", Email: "a@x.com", XP: 200, CompletedAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"missionId":"6","uid":"u1","email":"a@x.com","xp":200,"completedAt":"2025-10-01T12:00:00Z"}`, string(body))
}

// Runs against a live broker when RABBITMQ_URL is set.
func TestRabbitPublisher_RoundTrip(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}
	queue := "theta-test-" + time.Now().Format("150405.000000")

	p, err := NewRabbitPublisher(url, queue, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = p.channel.QueueDelete(queue, false, false, false)
		p.Close()
	})

	event := CompletionEvent{MissionID: "1", UID: "u1", Email: "a@x.com", XP: 100, CompletedAt: time.Now().UTC()}
	require.NoError(t, p.PublishCompletion(context.Background(), event))

	var msgBody []byte
	require.Eventually(t, func() bool {
		msg, ok, err := p.channel.Get(queue, true)
		if err != nil || !ok {
			return false
		}
		assert.Equal(t, "mission.completed", msg.Type)
		msgBody = msg.Body
		return true
	}, 5*time.Second, 50*time.Millisecond)

	var got CompletionEvent
	require.NoError(t, json.Unmarshal(msgBody, &got))
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, 100, got.XP)
}

func TestRabbitPublisher_CancelledContext(t *testing.T) {
	p := &RabbitPublisher{queueName: "q", logger: zaptest.NewLogger(t)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.PublishCompletion(ctx, CompletionEvent{}), context.Canceled)
}
