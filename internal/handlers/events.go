package handlers

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/metrics"
)

// eventSink publishes lifecycle events after a successful write. A failed
// publish is logged and counted but never fails the request.
type eventSink struct {
	pub events.Publisher
	log *zap.Logger
}

func newEventSink(pub events.Publisher, log *zap.Logger) *eventSink {
	if pub == nil {
		pub = events.Nop{}
	}
	return &eventSink{pub: pub, log: log}
}

func (s *eventSink) publish(c *gin.Context, e events.Event) {
	ctx := c.Request.Context()
	trace.SpanFromContext(ctx).AddEvent("publish "+e.Type, trace.WithAttributes(
		attribute.String("event.key", e.Key),
	))
	if err := s.pub.Publish(ctx, e); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(e.Type, "error").Inc()
		s.log.Warn("publish event failed",
			zap.String("type", e.Type),
			zap.String("key", e.Key),
			zap.Error(err),
		)
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(e.Type, "ok").Inc()
}
