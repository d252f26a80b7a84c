package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

type kafkaPublisher struct {
	w *kgo.Writer
}

// NewKafkaPublisher writes events to topic on brokers.
// Writes are asynchronous; delivery failures are logged.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	w := &kgo.Writer{
		Addr:         kgo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kgo.Message, err error) {
			if err != nil {
				log.Printf("kafka: failed to deliver %d event(s) to %s: %v", len(messages), topic, err)
			}
		},
	}
	return &kafkaPublisher{w: w}
}

func (p *kafkaPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

// message encodes ev as JSON, keyed by post so a post's events stay ordered
// within one partition.
func message(ev Event) (kgo.Message, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return kgo.Message{}, err
	}
	return kgo.Message{
		Key:   []byte(strconv.Itoa(ev.PostID)),
		Value: b,
		Time:  ev.OccurredAt,
	}, nil
}

func (p *kafkaPublisher) Close() error { return p.w.Close() }
