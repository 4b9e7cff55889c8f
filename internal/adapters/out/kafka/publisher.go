// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"fmt"
	"strconv"

	"shop/internal/core/ports"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// NewSyncProducer connects a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("error creating producer: %w", err)
	}
	return p, nil
}

// Publisher implements ports.MessagePublisher. Messages are keyed by
// aggregate id, so the events of one order land on one partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "kafka_publisher")),
	}
}

func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(message.EventType)},
		{Key: []byte("aggregate_type"), Value: []byte(message.AggregateType)},
		{Key: []byte("message_id"), Value: []byte(strconv.FormatInt(message.ID, 10))},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(message.AggregateID),
		Value:   sarama.ByteEncoder(message.Payload),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}

	p.logger.Debug("message sent",
		zap.String("topic", p.topic),
		zap.Int64("message_id", message.ID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
