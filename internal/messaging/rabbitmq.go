package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/observability"
)

// Event é o envelope publicado no broker para consumidores externos
// (e-mail, relatórios, integrações).
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher publica eventos de domínio. Um *RabbitPublisher nil é válido
// e descarta tudo: o broker é opcional em desenvolvimento.
type RabbitPublisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
	log       *zap.Logger
	metrics   *observability.Metrics
}

func NewRabbitPublisher(
	amqpURL string,
	queueName string,
	log *zap.Logger,
	metrics *observability.Metrics,
) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the queue (idempotent)
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitPublisher{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		cb:        config.NewCircuitBreaker("RabbitMQ-Publisher"),
		log:       log,
		metrics:   metrics,
	}, nil
}

// Publish é fire-and-forget: falhas contam no breaker e são logadas,
// nunca propagadas para o fluxo da requisição.
func (p *RabbitPublisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil {
		return
	}

	body, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		p.log.Warn("event marshal failed", zap.String("event", eventType), zap.Error(err))
		return
	}

	_, err = p.cb.Execute(func() (any, error) {
		return nil, p.ch.PublishWithContext(ctx,
			"",          // exchange default
			p.queueName, // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		p.log.Warn("event publish failed", zap.String("event", eventType), zap.Error(err))
	}
	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(eventType, outcome).Inc()
	}
}

func (p *RabbitPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
