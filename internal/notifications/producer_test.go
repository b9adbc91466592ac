package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() *BookingMessage {
	return NewBookingMessageBuilder(BookingEventStatusChanged).
		WithBooking(uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()).
		WithActor(uuid.New()).
		WithStatus("confirmed", "pending").
		WithCost(125.5, "2026-05-01").
		Build()
}

func TestKafkaBookingPublisher_Publish(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	producer := mocks.NewSyncProducer(t, nil)
	msg := sampleMessage()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded BookingMessage
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded.BookingID != msg.BookingID || decoded.Status != "confirmed" || decoded.PreviousStatus != "pending" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	publisher := newKafkaBookingPublisher(producer, cfg)
	require.NoError(t, publisher.PublishBookingEvent(context.Background(), msg))
	require.NoError(t, publisher.Close())
}

func TestKafkaBookingPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := newKafkaBookingPublisher(producer, DefaultKafkaProducerConfig())
	err := publisher.PublishBookingEvent(context.Background(), sampleMessage())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestBookingMessage_PartitionKeyAndHeaders(t *testing.T) {
	msg := sampleMessage()
	assert.Equal(t, msg.BookingID.String(), msg.GetPartitionKey())

	headers := createHeaders(msg)
	found := map[string]string{}
	for _, h := range headers {
		found[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, string(BookingEventStatusChanged), found["event_type"])
	assert.Equal(t, msg.ID.String(), found["message_id"])
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	sc := newSaramaConfig(cfg)

	assert.True(t, sc.Producer.Return.Successes)
	assert.Equal(t, 1, sc.Net.MaxOpenRequests)
	assert.Equal(t, "eventplanner-bookings", sc.ClientID)
	require.NoError(t, sc.Validate())
}
