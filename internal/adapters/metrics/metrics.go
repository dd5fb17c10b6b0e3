package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/viralforge/product-event-service/internal/ports"
)

var (
	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "product_event_service",
		Name:      "events_published_total",
		Help:      "Publish attempts handed to the broker client, by outcome.",
	}, []string{"topic", "outcome"})

	publishDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "product_event_service",
		Name:      "publish_duration_seconds",
		Help:      "Time from handing a message to the broker client until its acknowledgement.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(eventsPublished, publishDuration)
}

// InstrumentedPublisher wraps an EventPublisher and records publish counts
// and latencies.
type InstrumentedPublisher struct {
	next ports.EventPublisher
}

func NewInstrumentedPublisher(next ports.EventPublisher) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	start := time.Now()
	err := p.next.Publish(ctx, topic, key, payload)
	publishDuration.WithLabelValues(topic).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	eventsPublished.WithLabelValues(topic, outcome).Inc()
	return err
}
