package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"microfinance-backoffice/internal/domain/notification"
)

// Producer publishes lifecycle events to a topic exchange. It implements
// notification.Publisher; routing key is the event kind, e.g.
// "investment.approved".
type Producer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewProducer(amqpURL, exchange string) (*Producer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Producer{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *Producer) Publish(ctx context.Context, routingKey string, ev notification.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        payload,
	}); err != nil {
		return err
	}

	log.Printf("queue: published %s to %s", routingKey, p.exchange)
	return nil
}

func (p *Producer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// sanitizeAMQPURL tolerates quoted or prefixed values copied from env files.
func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	lower := strings.ToLower(clean)
	if idx := strings.Index(lower, "amqps://"); idx > 0 {
		clean = clean[idx:]
	} else if idx := strings.Index(lower, "amqp://"); idx > 0 {
		clean = clean[idx:]
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
