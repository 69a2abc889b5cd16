package publisher

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/pkg/messaging"
)

type rabbitPublisher interface {
	PublishWithContext(
		ctx context.Context,
		data []byte,
		routingKeys []string,
		optionFuncs ...func(*rabbitmq.PublishOptions),
	) error
}

// RabbitSink publishes state events to the weather_display exchange.
type RabbitSink struct {
	prod   rabbitPublisher
	logger zerolog.Logger
}

func NewRabbitSink(prod rabbitPublisher, logger zerolog.Logger) *RabbitSink {
	return &RabbitSink{
		prod:   prod,
		logger: logger.With().Str("component", "RabbitSink").Logger(),
	}
}

func (s *RabbitSink) Name() string { return "rabbitmq" }

func (s *RabbitSink) Send(ctx context.Context, ev models.StateEvent) error {
	body, err := json.Marshal(messaging.NewStateChangedEvent(ev))
	if err != nil {
		return err
	}

	if err := s.prod.PublishWithContext(
		ctx,
		body,
		[]string{messaging.StateRoutingKey},
		rabbitmq.WithPublishOptionsContentType("application/json"),
		rabbitmq.WithPublishOptionsExchange(messaging.ExchangeName),
	); err != nil {
		return err
	}
	s.logger.Debug().
		Str("routing_key", messaging.StateRoutingKey).
		Msg("state event published")
	return nil
}

// NewRabbitConn dials the broker.
func NewRabbitConn(addr string) (*rabbitmq.Conn, error) {
	return rabbitmq.NewConn(addr, rabbitmq.WithConnectionOptionsLogging)
}

// NewRabbitPublisher declares the exchange and returns a publisher bound to it.
func NewRabbitPublisher(conn *rabbitmq.Conn) (*rabbitmq.Publisher, error) {
	return rabbitmq.NewPublisher(
		conn,
		rabbitmq.WithPublisherOptionsExchangeName(messaging.ExchangeName),
		rabbitmq.WithPublisherOptionsExchangeDeclare,
		rabbitmq.WithPublisherOptionsExchangeDurable,
		rabbitmq.WithPublisherOptionsLogging,
	)
}
