package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	msg, err := EncodeEvent("product.created", map[string]interface{}{"id": 1, "sku": "prod-20240305-belt"}, at)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "product.created", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "product.created", decoded["event"])
	assert.Equal(t, "2024-03-05T10:30:00Z", decoded["occurred_at"])
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, "prod-20240305-belt", data["sku"])
}

func TestEncodeEventRejectsUnmarshalable(t *testing.T) {
	_, err := EncodeEvent("product.created", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestPublishWithoutChannel(t *testing.T) {
	var c *Client
	assert.Error(t, c.PublishEvent("product.deleted", nil))
	assert.Error(t, (&Client{}).PublishEvent("product.deleted", nil))
}
