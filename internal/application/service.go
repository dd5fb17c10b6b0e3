package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/viralforge/product-event-service/internal/domain"
	"github.com/viralforge/product-event-service/internal/ports"
)

type Config struct {
	ServiceName string
	Topic       string
	// PublishTimeout bounds the wait for broker acknowledgement. Zero keeps
	// the wait unbounded.
	PublishTimeout time.Duration
}

type Dependencies struct {
	Config    Config
	Publisher ports.EventPublisher
	Deduper   ports.Deduper
}

// Service turns product operations into versioned events on a single topic.
// The publisher handle is shared state; the mutex guarantees that only one
// publish uses it at a time, so messages reach the broker in lock-acquisition
// order for this instance.
type Service struct {
	cfg       Config
	publisher ports.EventPublisher
	deduper   ports.Deduper

	mu sync.Mutex
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "product-event-service"
	}
	if cfg.Topic == "" {
		cfg.Topic = "products"
	}
	return &Service{
		cfg:       cfg,
		publisher: deps.Publisher,
		deduper:   deps.Deduper,
	}
}

func (s *Service) Create(ctx context.Context, p domain.Product, idempotencyKey string) (domain.ProductEvent, error) {
	return s.emit(ctx, p, domain.EventTypeCreated, idempotencyKey)
}

func (s *Service) Update(ctx context.Context, p domain.Product, idempotencyKey string) (domain.ProductEvent, error) {
	return s.emit(ctx, p, domain.EventTypeUpdated, idempotencyKey)
}

func (s *Service) Delete(ctx context.Context, p domain.Product, idempotencyKey string) (domain.ProductEvent, error) {
	return s.emit(ctx, p, domain.EventTypeDeleted, idempotencyKey)
}

func (s *Service) emit(ctx context.Context, p domain.Product, eventType domain.EventType, idempotencyKey string) (domain.ProductEvent, error) {
	if err := s.reserveIdempotency(ctx, idempotencyKey); err != nil {
		return domain.ProductEvent{}, err
	}

	event, err := domain.NewProductEvent(p, eventType)
	if err != nil {
		s.releaseIdempotency(ctx, idempotencyKey)
		return domain.ProductEvent{}, err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.releaseIdempotency(ctx, idempotencyKey)
		return domain.ProductEvent{}, fmt.Errorf("%w: %v", domain.ErrEventEncoding, err)
	}

	// A disconnecting caller must not abort a delivery that already started.
	pubCtx := context.WithoutCancel(ctx)
	if s.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(pubCtx, s.cfg.PublishTimeout)
		defer cancel()
	}

	s.mu.Lock()
	err = s.publisher.Publish(pubCtx, s.cfg.Topic, event.ID, payload)
	s.mu.Unlock()
	if err != nil {
		s.releaseIdempotency(ctx, idempotencyKey)
		return domain.ProductEvent{}, err
	}
	return event, nil
}

func (s *Service) reserveIdempotency(ctx context.Context, key string) error {
	if s.deduper == nil || key == "" {
		return nil
	}
	added, err := s.deduper.Add(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdempotencyConflict, err)
	}
	if !added {
		return fmt.Errorf("%w: key %q already processed", domain.ErrIdempotencyConflict, key)
	}
	return nil
}

func (s *Service) releaseIdempotency(ctx context.Context, key string) {
	if s.deduper == nil || key == "" {
		return
	}
	_ = s.deduper.Remove(ctx, key)
}
