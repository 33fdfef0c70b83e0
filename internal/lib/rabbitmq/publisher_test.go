package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	uri, cleanup := amqpURIForTest(ctx, t)
	defer cleanup()

	conn, err := Connect(uri, 5, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	const exchange = "auth.audit.publish-test"
	ch, err := SetupExchange(conn, exchange)
	require.NoError(t, err)

	consumer, err := conn.Channel()
	require.NoError(t, err)
	q, err := consumer.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, consumer.QueueBind(q.Name, "", exchange, false, nil))

	publisher := NewPublisher(ch, exchange)
	defer func() { _ = publisher.Close() }()

	type testMsg struct {
		Action string `json:"action"`
		Target string `json:"target"`
	}

	t.Run("success publish and consume", func(t *testing.T) {
		msg := testMsg{Action: "disable_user", Target: "alice@example.com"}
		require.NoError(t, publisher.Publish(ctx, "disable_user", msg))

		deliveries, err := consumer.Consume(q.Name, "test-consumer", true, false, false, false, nil)
		require.NoError(t, err)

		select {
		case d := <-deliveries:
			var got testMsg
			require.NoError(t, json.Unmarshal(d.Body, &got))
			assert.Equal(t, msg, got)
			assert.Equal(t, "application/json", d.ContentType)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for message")
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		bad := struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)}

		err := publisher.Publish(ctx, "x", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := publisher.Publish(cctx, "x", testMsg{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
