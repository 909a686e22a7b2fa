package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/openorigin/traceability/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishEventRecorded publishes an event-recorded message with tracing
func (p *Publisher) PublishEventRecorded(ctx context.Context, msg EventRecordedMessage) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.event_recorded",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicTraceEvents),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("message.type", MessageTypeEventRecorded),
			attribute.String("event.id", msg.EventID),
			attribute.String("event.type", msg.EventType),
			attribute.String("actor.id", msg.ActorID),
		),
	)
	defer span.End()

	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("msg_%d", time.Now().UnixNano())
	}
	msg.MessageType = MessageTypeEventRecorded
	msg.PublishedAt = time.Now()

	span.SetAttributes(attribute.String("message.id", msg.MessageID))

	partition, offset, err := p.send(ctx, TopicTraceEvents, msg.ActorID, msg.MessageType, msg.MessageID, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicTraceEvents).
			Str("event_id", msg.EventID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event-recorded message")
		return err
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Message published successfully")

	logger.Logger.Info().
		Str("message_id", msg.MessageID).
		Str("message_type", msg.MessageType).
		Str("topic", TopicTraceEvents).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("event_id", msg.EventID).
		Str("event_type", msg.EventType).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event-recorded message published")

	return nil
}

// PublishBatchStatusChanged publishes a batch status transition with tracing
func (p *Publisher) PublishBatchStatusChanged(ctx context.Context, msg BatchStatusChangedMessage) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.batch_status_changed",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicBatchStatus),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("message.type", MessageTypeBatchStatusChanged),
			attribute.String("batch.id", msg.BatchID),
			attribute.String("batch.status", msg.Status),
			attribute.String("actor.id", msg.ActorID),
		),
	)
	defer span.End()

	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("msg_%d", time.Now().UnixNano())
	}
	msg.MessageType = MessageTypeBatchStatusChanged
	msg.PublishedAt = time.Now()

	span.SetAttributes(attribute.String("message.id", msg.MessageID))

	partition, offset, err := p.send(ctx, TopicBatchStatus, msg.ActorID, msg.MessageType, msg.MessageID, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicBatchStatus).
			Str("batch_id", msg.BatchID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish batch-status message")
		return err
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Message published successfully")

	logger.Logger.Info().
		Str("message_id", msg.MessageID).
		Str("message_type", msg.MessageType).
		Str("topic", TopicBatchStatus).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("batch_id", msg.BatchID).
		Str("status", msg.Status).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Batch-status message published")

	return nil
}

// send marshals the payload, injects the trace context into the message
// headers, and hands the message to the producer. Messages are keyed by
// actor so one actor's stream stays ordered within a partition.
func (p *Publisher) send(ctx context.Context, topic, actorID, messageType, messageID string, payload interface{}) (int32, int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("message_type"),
			Value: []byte(messageType),
		},
		{
			Key:   []byte("message_id"),
			Value: []byte(messageID),
		},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder("actor_" + actorID),
		Value:   sarama.ByteEncoder(body),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send message to Kafka: %w", err)
	}
	return partition, offset, nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
