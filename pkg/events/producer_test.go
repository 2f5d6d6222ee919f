package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	ev := New(OrderCreated, map[string]any{"order_id": 3})

	msg, err := buildMessage("order_events", "17", ev)
	require.NoError(t, err)
	assert.Equal(t, "order_events", msg.Topic)
	assert.Equal(t, []byte("17"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, OrderCreated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, OrderCreated, decoded["type"])
	_, err = uuid.Parse(decoded["event_id"].(string))
	assert.NoError(t, err)
	assert.EqualValues(t, 3, decoded["data"].(map[string]any)["order_id"])
}

func TestBuildMessage_Unmarshalable(t *testing.T) {
	_, err := buildMessage("t", "k", New("bad", make(chan int)))
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard{}.PublishEvent(context.Background(), "t", "k", New("x", nil)))
}
