package messaging

const (
	ExchangeName    = "weather_display"
	StateRoutingKey = "state"
	StateQueueName  = "weather_display_state"

	RedisStateChannel = "weather-display:state"
)
