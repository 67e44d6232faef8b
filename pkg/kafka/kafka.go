package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
)

const (
	ActivityTopic         = "library.events"
	ActivityConsumerGroup = "library-activity"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

// EventActivity is the message published for every borrow, return and
// payment and folded into the activity log by the consumer.
type EventActivity struct {
	Timestamp time.Time `json:"timestamp"`
	MemberID  string    `json:"memberId"`
	BookID    string    `json:"bookId,omitempty"`
	RecordID  string    `json:"recordId,omitempty"`
	EventType string    `json:"eventType"`
	Amount    int       `json:"amount,omitempty"`
}

const (
	EventTypeBorrow  = "BORROW"
	EventTypeReturn  = "RETURN"
	EventTypePayment = "PAYMENT"
)

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group loop until the group is closed.
func Consume(cg sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) {
	for {
		if err := cg.Consume(context.Background(), topics, handler); err != nil {
			return
		}
	}
}
