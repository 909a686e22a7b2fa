package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/openorigin/traceability/pkg/logger"
)

// Consumer wraps Kafka consumer
type Consumer struct {
	consumer      sarama.ConsumerGroup
	brokers       []string
	groupID       string
	topics        []string
	handlers      map[string]SubmissionHandler
	handlersMutex sync.RWMutex
}

// SubmissionHandler handles an inbound event submission
type SubmissionHandler func(ctx context.Context, msg EventSubmittedMessage) error

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		consumer: consumer,
		brokers:  brokers,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]SubmissionHandler),
	}, nil
}

// RegisterHandler registers a handler for a specific message type
func (c *Consumer) RegisterHandler(messageType string, handler SubmissionHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[messageType] = handler
	logger.Logger.Info().
		Str("message_type", messageType).
		Msg("Submission handler registered")
}

// Start starts consuming messages
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		consumer: c,
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping...")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().
						Err(err).
						Msg("Error from consumer")
				}
			}
		}
	}()

	// Handle errors
	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().
				Err(err).
				Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	// Extract trace context from Kafka headers
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		key := string(header.Key)
		// Only extract trace context headers
		if key == "traceparent" || key == "tracestate" {
			carrier[key] = string(header.Value)
		}
	}

	// Extract context with trace
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	// Start consumer span
	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume.event_submission",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.String("messaging.source_kind", "topic"),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	logger.Logger.Debug().
		Str("topic", message.Topic).
		Int32("partition", message.Partition).
		Int64("offset", message.Offset).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Received message")

	// Get message type from headers
	messageType := ""
	messageID := ""
	for _, header := range message.Headers {
		if string(header.Key) == "message_type" {
			messageType = string(header.Value)
		}
		if string(header.Key) == "message_id" {
			messageID = string(header.Value)
		}
	}

	if messageType == "" {
		span.SetStatus(codes.Error, "Message without message_type header")
		logger.Logger.Warn().Msg("Message without message_type header")
		return
	}

	span.SetAttributes(
		attribute.String("message.type", messageType),
		attribute.String("message.id", messageID),
	)

	// Get handler for message type
	h.consumer.handlersMutex.RLock()
	handler, exists := h.consumer.handlers[messageType]
	h.consumer.handlersMutex.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "No handler registered")
		logger.Logger.Warn().
			Str("message_type", messageType).
			Msg("No handler registered for message type")
		return
	}

	// Parse message based on type
	switch messageType {
	case MessageTypeEventSubmitted:
		var msg EventSubmittedMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to unmarshal message")
			logger.Logger.Error().
				Err(err).
				Str("message_type", messageType).
				Msg("Failed to unmarshal message")
			return
		}

		span.SetAttributes(
			attribute.String("actor.id", msg.ActorID),
			attribute.Int("submission.bytes", len(msg.Document)),
		)

		// Handle submission
		if err := handler(ctx, msg); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to handle submission")
			logger.Logger.Error().
				Err(err).
				Str("message_type", messageType).
				Str("message_id", msg.MessageID).
				Str("actor_id", msg.ActorID).
				Str("trace_id", span.SpanContext().TraceID().String()).
				Msg("Failed to handle submission")
			return
		}

		span.SetStatus(codes.Ok, "Submission handled successfully")
		logger.Logger.Info().
			Str("message_type", messageType).
			Str("message_id", msg.MessageID).
			Str("actor_id", msg.ActorID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Submission handled successfully")

	default:
		span.SetStatus(codes.Error, "Unknown message type")
		logger.Logger.Warn().
			Str("message_type", messageType).
			Msg("Unknown message type")
	}
}
