package events

import (
	"encoding/json"

	"github.com/IBM/sarama"
)

// Publisher pushes domain events to the activity topic. Services treat
// publishing as fire-and-forget telemetry: a broker hiccup never fails
// the user's operation.
type Publisher interface {
	Publish(topic string, v any) error
}

func NewPublisher(producer sarama.SyncProducer) Publisher {
	return &publisherImpl{producer: producer}
}

type publisherImpl struct {
	producer sarama.SyncProducer
}

func (p *publisherImpl) Publish(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// Nop is used when Kafka is not configured (demo and test runs).
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
