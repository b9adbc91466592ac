package notifications

import (
	"context"
	"fmt"
	"time"

	"eventplanner/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher emits booking lifecycle messages
type Publisher interface {
	PublishBookingEvent(ctx context.Context, message *BookingMessage) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka booking producer
type KafkaProducerConfig struct {
	Brokers          []string
	BookingTopic     string
	ClientID         string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		BookingTopic:     "booking-events",
		ClientID:         "eventplanner-bookings",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaBookingPublisher publishes booking messages through a sync producer
type KafkaBookingPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

func NewKafkaBookingPublisher(config *KafkaProducerConfig) (*KafkaBookingPublisher, error) {
	producer, err := sarama.NewSyncProducer(config.Brokers, newSaramaConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return newKafkaBookingPublisher(producer, config), nil
}

func newKafkaBookingPublisher(producer sarama.SyncProducer, config *KafkaProducerConfig) *KafkaBookingPublisher {
	return &KafkaBookingPublisher{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}
}

func newSaramaConfig(config *KafkaProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = config.ClientID

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Idempotence requires a single in-flight request
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps a booking's events ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	return saramaConfig
}

func (p *KafkaBookingPublisher) PublishBookingEvent(ctx context.Context, message *BookingMessage) error {
	payload, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.config.BookingTopic,
		Key:       sarama.StringEncoder(message.GetPartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   createHeaders(message),
		Timestamp: message.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send booking message to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "Booking event published",
		"topic", p.config.BookingTopic,
		"partition", partition,
		"offset", offset,
		"type", string(message.Type),
		"booking_id", message.BookingID.String(),
	)
	return nil
}

func (p *KafkaBookingPublisher) Close() error {
	return p.producer.Close()
}

func createHeaders(message *BookingMessage) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(message.ID.String())},
		{Key: []byte("event_type"), Value: []byte(message.Type)},
		{Key: []byte("booking_id"), Value: []byte(message.BookingID.String())},
		{Key: []byte("content_type"), Value: []byte("application/json")},
	}
}

// NoopPublisher drops messages when Kafka is disabled
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(context.Context, *BookingMessage) error { return nil }

func (NoopPublisher) Close() error { return nil }
