package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Topic string   `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"notifications"`
}

// Notification is the message handed to the notification sink.
// Delivery and read-tracking are the sink's concern.
type Notification struct {
	Username string    `json:"username"`
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sentAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
