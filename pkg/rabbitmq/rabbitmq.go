package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"selling/internal/logger"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// CatalogQueue receives one message per catalog change.
const CatalogQueue = "catalog_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp channels are not safe for concurrent publishing.
	mu  sync.Mutex
	now func() time.Time
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Envelope is the JSON body of a catalog event message.
type Envelope struct {
	Event      string      `json:"event"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the catalog queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		CatalogQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", CatalogQueue, err)
	}

	logger.Log.Info("RabbitMQ client connected", zap.String("queue", CatalogQueue))

	return &Client{
		conn:    conn,
		channel: ch,
		now:     time.Now,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeEvent builds the persistent JSON message for a catalog event.
func EncodeEvent(event string, payload interface{}, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(Envelope{Event: event, Data: payload, OccurredAt: at.UTC()})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    at,
	}, nil
}

// PublishEvent publishes a catalog event to the catalog queue through the
// default exchange.
func (c *Client) PublishEvent(event string, payload interface{}) error {
	if c == nil || c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := EncodeEvent(event, payload, c.now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",           // exchange: default exchange
		CatalogQueue, // routing key: the queue name
		false,        // mandatory
		false,        // immediate
		msg)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Log.Debug("catalog event sent", zap.String("event", event), zap.ByteString("body", msg.Body))
	return nil
}
