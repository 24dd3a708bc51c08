package utils

import (
	"context"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareQueue(name string, ch *amqp.Channel) (queue amqp.Queue, err error) {
	queue, err = ch.QueueDeclare(
		name,  // name
		false, // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return
	}
	// One job at a time per consumer
	if err = ch.Qos(1, 0, false); err != nil {
		return
	}
	return
}

func Publish(ctx context.Context, ch *amqp.Channel, queue, correlationId string, body []byte) error {
	return ch.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/x-protobuf",
			CorrelationId: correlationId,
			Body:          body,
		})
}

// FailOnNack puts the message back in the queue
func FailOnNack(d amqp.Delivery, err error) {
	log.Printf("WARN queue: could not handle message %s: %v", d.CorrelationId, err)
	if err = d.Nack(false, true); err != nil {
		log.Fatalf("Could not NACK to message queue: %v", err)
	}
}

// FailOnReject drops a message that can never be handled
func FailOnReject(d amqp.Delivery, err error) {
	log.Printf("WARN queue: rejecting message %s: %v", d.CorrelationId, err)
	if err = d.Reject(false); err != nil {
		log.Fatalf("Could not REJECT to message queue: %v", err)
	}
}
