package services

// Routing keys for marketplace events published on the message broker.
const (
	EventOrderCreated   = "order.created"
	EventOfferSubmitted = "offer.submitted"
	EventSupplierRated  = "supplier.rated"
)

// EventPublisher publishes marketplace events. Implemented by the RabbitMQ
// client; services treat a nil publisher as "messaging disabled" and carry on.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
