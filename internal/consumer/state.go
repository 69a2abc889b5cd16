package consumer

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/weather-display/pkg/messaging"
)

type consumeRecorder interface {
	IncConsumed(result string)
}

// StateListener logs state events published by a running weather display.
type StateListener struct {
	logger   zerolog.Logger
	recorder consumeRecorder
	last     messaging.StateChangedEvent
}

func NewStateListener(logger zerolog.Logger, recorder consumeRecorder) *StateListener {
	return &StateListener{
		logger:   logger.With().Str("component", "StateListener").Logger(),
		recorder: recorder,
	}
}

// Receive handles one delivery. Malformed payloads are discarded.
func (c *StateListener) Receive(d rabbitmq.Delivery) rabbitmq.Action {
	var evt messaging.StateChangedEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.logger.Error().
			Err(err).
			Str("routing_key", d.RoutingKey).
			Msg("unmarshal error")
		c.recorder.IncConsumed("unmarshal_error")
		return rabbitmq.NackDiscard
	}

	if evt.Generation < c.last.Generation {
		c.logger.Warn().
			Uint64("generation", evt.Generation).
			Uint64("latest", c.last.Generation).
			Msg("out of order state event")
		c.recorder.IncConsumed("out_of_order")
		return rabbitmq.Ack
	}
	c.last = evt

	l := c.logger.Info().
		Str("status", evt.Status).
		Uint64("generation", evt.Generation)
	if evt.City != "" {
		l = l.Str("city", evt.City)
	}
	if evt.Temperature != nil {
		l = l.Float64("temperature", *evt.Temperature)
	}
	if evt.Error != nil {
		l = l.Str("error_kind", evt.Error.Kind).Str("error", evt.Error.Message)
	}
	l.Msg("state changed")

	c.recorder.IncConsumed(evt.Status)
	return rabbitmq.Ack
}

// Last returns the newest event seen so far.
func (c *StateListener) Last() messaging.StateChangedEvent {
	return c.last
}

// NewStateConsumer binds a durable queue to the state routing key.
func NewStateConsumer(conn *rabbitmq.Conn) (*rabbitmq.Consumer, error) {
	return rabbitmq.NewConsumer(
		conn,
		messaging.StateQueueName,
		rabbitmq.WithConsumerOptionsExchangeName(messaging.ExchangeName),
		rabbitmq.WithConsumerOptionsExchangeDeclare,
		rabbitmq.WithConsumerOptionsExchangeDurable,
		rabbitmq.WithConsumerOptionsRoutingKey(messaging.StateRoutingKey),
		rabbitmq.WithConsumerOptionsQueueDurable,
	)
}
