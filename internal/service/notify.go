package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/pkg/circuit_breaker"
	"github.com/libstack/lending-service/pkg/kafka"
)

// Notification kinds visible to patrons.
const (
	KindReservationPending   = "reservation_pending"
	KindReservationReady     = "reservation_ready"
	KindReservationFulfilled = "reservation_fulfilled"
	KindReservationCancelled = "reservation_cancelled"
	KindReservationExpired   = "reservation_expired"
	KindFineIssued           = "fine_issued"
	KindFineResolved         = "fine_resolved"
)

// Notifier hands a typed, addressed message to the notification sink.
// Delivery is the sink's concern; emission is best effort and never
// fails the business operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, username, kind, message string)
}

type kafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string, log *zap.Logger) Notifier {
	return &kafkaNotifier{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(20, 10*time.Second, 0.5, 5),
		log:      log.Named("notifier"),
	}
}

func (n *kafkaNotifier) Notify(_ context.Context, username, kind, message string) {
	event := kafka.Notification{
		Username: username,
		Kind:     kind,
		Message:  message,
		SentAt:   time.Now().UTC(),
	}
	err := n.cb.Call(func() error {
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		msg := &sarama.ProducerMessage{Topic: n.topic, Value: sarama.StringEncoder(data)}
		_, _, err = n.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		n.log.Warn("notification dropped",
			zap.String("username", username),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string) {}

// NewNopNotifier keeps the engine running without a broker.
func NewNopNotifier() Notifier { return nopNotifier{} }
