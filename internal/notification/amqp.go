package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives ledger events when none is configured.
const DefaultExchange = "ledger_events"

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes messages as JSON to a durable topic exchange. The
// routing key is the message kind.
type AMQPNotifier struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger

	mu       sync.Mutex
	ch       channel
	declared bool
}

// NewAMQPNotifier dials the broker and opens a channel.
func NewAMQPNotifier(rawURL, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	clean, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}
	conn, err := amqp.DialConfig(clean, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	n := newAMQPNotifier(ch, exchange, logger)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch channel, exchange string, logger *slog.Logger) *AMQPNotifier {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPNotifier{ch: ch, exchange: exchange, logger: logger}
}

// Send publishes message. A failed publish reopens the channel once and
// retries.
func (n *AMQPNotifier) Send(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.publish(ctx, message.Kind, body)
	if err == nil {
		return nil
	}
	n.logger.Warn("notification publish failed; reopening channel",
		slog.String("exchange", n.exchange),
		slog.String("routing_key", message.Kind),
		slog.Any("error", err),
	)
	if n.conn == nil {
		return err
	}
	ch, chErr := n.conn.Channel()
	if chErr != nil {
		return errors.Join(err, chErr)
	}
	n.ch = ch
	n.declared = false
	return n.publish(ctx, message.Kind, body)
}

func (n *AMQPNotifier) publish(ctx context.Context, key string, body []byte) error {
	if !n.declared {
		if err := n.ch.ExchangeDeclare(n.exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", n.exchange, err)
		}
		n.declared = true
	}
	return n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
}

// Close releases the channel and the connection.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	var errs []error
	if n.ch != nil {
		errs = append(errs, n.ch.Close())
	}
	if n.conn != nil {
		errs = append(errs, n.conn.Close())
	}
	return errors.Join(errs...)
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parse amqp url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
