package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"newsagent/config"
	"newsagent/types"

	"github.com/IBM/sarama"
)

// KafkaLog publishes every saved article to a topic, keyed by URL (or title
// hash when the URL is empty).
type KafkaLog struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaLog creates a synchronous producer for brokers.
func NewKafkaLog(brokers []string, topic string) (*KafkaLog, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Timeout = config.StoreTimeout
	saramaConfig.Producer.Retry.Max = 0

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("storage: create Kafka producer: %w", err)
	}
	return newKafkaLog(producer, topic), nil
}

func newKafkaLog(p sarama.SyncProducer, topic string) *KafkaLog {
	return &KafkaLog{producer: p, topic: topic}
}

// Save sends one message. The sarama producer does not take a context; the
// producer timeout bounds the call instead.
func (k *KafkaLog) Save(ctx context.Context, a *types.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(newRecord(a))
	if err != nil {
		return fmt.Errorf("storage: marshal article: %w", err)
	}

	key := a.URL
	if key == "" {
		key = a.Key()
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(b),
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("storage: publish article to %s: %w", k.topic, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (k *KafkaLog) Close() error {
	return k.producer.Close()
}
