package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// Publisher fans out entity change events over a topic exchange. Routing
// keys are "<entity>.<change>", e.g. "showcase.updated", so consumers can
// bind with wildcard patterns.
type Publisher struct {
	log      *logger.Logger
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

type changeEvent struct {
	Entity    string      `json:"entity"`
	Change    string      `json:"change"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewPublisher(log *logger.Logger) (*Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	url := strings.TrimSpace(os.Getenv("AMQP_URL"))
	if url == "" {
		return nil, fmt.Errorf("missing AMQP_URL")
	}
	exchange := strings.TrimSpace(os.Getenv("AMQP_EXCHANGE"))
	if exchange == "" {
		exchange = "showcase.events"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &Publisher{
		log:      log.With("client", "RabbitPublisher"),
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (p *Publisher) PublishChange(ctx context.Context, entity, change string, payload interface{}) error {
	if p == nil || p.channel == nil {
		return fmt.Errorf("rabbit publisher not initialized")
	}
	body, err := json.Marshal(changeEvent{
		Entity:    entity,
		Change:    change,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.channel.PublishWithContext(
		ctx,
		p.exchange,
		entity+"."+change,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
