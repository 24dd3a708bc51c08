package node

import (
	"context"
	"fmt"
	"time"

	"github.com/lioia/pagerank/pkg/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Consume reads rank jobs from the work queue and publishes every result
// to the result queue, until ctx is done or the channel is closed.
// Jobs that can never succeed are rejected, other failures are requeued.
func (n *Node) Consume(ctx context.Context) error {
	if n.Queue == nil {
		return fmt.Errorf("no queue configured")
	}
	msgs, err := n.Queue.Channel.Consume(
		n.Queue.Work.Name, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		return fmt.Errorf("could not register a consumer for %s queue: %w", n.Queue.Work.Name, err)
	}
	utils.NodeLog("worker", "Registered consumer for queue %s", n.Queue.Work.Name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			n.handleDelivery(ctx, d)
		}
	}
}

func (n *Node) handleDelivery(ctx context.Context, d amqp.Delivery) {
	body, err := n.HandleJob(d.Body)
	n.Metrics.Observe("amqp", err)
	if err != nil {
		if IsInvalidRequest(err) {
			utils.FailOnReject(d, err)
		} else {
			utils.FailOnNack(d, err)
		}
		return
	}
	correlationId := d.CorrelationId
	if correlationId == "" {
		correlationId = d.MessageId
	}
	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = utils.Publish(publishCtx, n.Queue.Channel, n.Queue.Result.Name, correlationId, body); err != nil {
		utils.FailOnNack(d, err)
		return
	}
	if err = d.Ack(false); err != nil {
		utils.WarnLog("worker", "Could not ACK message %s: %v", correlationId, err)
		return
	}
	utils.NodeLog("worker", "Completed job %s", correlationId)
}

// HandleJob decodes a protobuf encoded request, computes it and returns the
// protobuf encoded result
func (n *Node) HandleJob(body []byte) ([]byte, error) {
	var job structpb.Struct
	if err := proto.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	req, err := RequestFromStruct(&job)
	if err != nil {
		return nil, err
	}
	result, err := n.Compute(req)
	if err != nil {
		return nil, err
	}
	out, err := result.Struct()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(out)
}
