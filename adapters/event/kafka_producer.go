package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
	"github.com/khoahotran/video-hub/pkg/metrics"
)

const (
	TopicVideoEvents = "video.events"
)

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	VideoEventsWriter messageWriter
	logger            logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'video.events'
	videoWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicVideoEvents,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{VideoEventsWriter: videoWriter, logger: log}, nil
}

// PublishVideoEvent keys messages by video id so events of one video stay ordered.
func (c *KafkaProducerClient) PublishVideoEvent(ctx context.Context, e video.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal video event: %w", err)
	}

	err = c.VideoEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.VideoID.String()),
		Value: payload,
	})
	if err != nil {
		metrics.VideoEventsPublished.WithLabelValues(string(e.EventType), "failure").Inc()
		return fmt.Errorf("write video event to kafka: %w", err)
	}
	metrics.VideoEventsPublished.WithLabelValues(string(e.EventType), "success").Inc()
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.VideoEventsWriter != nil {
		if err := c.VideoEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// DecodeVideoEvent parses a message read from TopicVideoEvents.
func DecodeVideoEvent(msg kafka.Message) (video.Event, error) {
	var e video.Event
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return e, fmt.Errorf("unmarshal video event: %w", err)
	}
	return e, nil
}
