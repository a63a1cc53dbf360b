package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const (
	// LoanTopic carries lifecycle events consumed by the stats service.
	LoanTopic = "loan-events"
	// CatalogTopic carries book updates published by the catalog service.
	CatalogTopic = "catalog-events"

	LoanConsumerGroup = "loan-service"
)

type EventType string

const (
	EventCheckout EventType = "CHECKOUT"
	EventReturn   EventType = "RETURN"
	EventRenew    EventType = "RENEW"
)

type LoanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"username"`
	LoanUid   string    `json:"loanUid"`
	BookID    int       `json:"bookId"`
	EventType EventType `json:"eventType"`
}

type CatalogEvent struct {
	BookID      int    `json:"bookId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Copies      int    `json:"copies"`
}

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

// Consume runs the consumer group loop until the group is closed. Consume
// returns on every rebalance; the loop re-enters the session.
func Consume(consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic string) {
	ctx := context.Background()
	for {
		if err := consumer.Consume(ctx, []string{topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}
