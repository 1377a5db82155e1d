package feed

import (
	"context"
	"encoding/json"

	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// notifyingRepo publishes a change notification after every successful write
type notifyingRepo struct {
	repository.DocumentRepository
	bus Bus
	log zerolog.Logger
}

// NewNotifyingRepository wraps docs so that writes reach live subscribers
func NewNotifyingRepository(docs repository.DocumentRepository, bus Bus, log zerolog.Logger) repository.DocumentRepository {
	return &notifyingRepo{
		DocumentRepository: docs,
		bus:                bus,
		log:                log.With().Str("component", "notifying_repo").Logger(),
	}
}

func (r *notifyingRepo) Set(ctx context.Context, path string, snap models.Snapshot) error {
	if err := r.DocumentRepository.Set(ctx, path, snap); err != nil {
		return err
	}
	r.publish(ctx, path)
	return nil
}

func (r *notifyingRepo) Push(ctx context.Context, path string, value json.RawMessage) (string, error) {
	key, err := r.DocumentRepository.Push(ctx, path, value)
	if err != nil {
		return "", err
	}
	r.publish(ctx, path)
	return key, nil
}

func (r *notifyingRepo) Delete(ctx context.Context, path string) error {
	if err := r.DocumentRepository.Delete(ctx, path); err != nil {
		return err
	}
	r.publish(ctx, path)
	return nil
}

// publish failures are logged only; the write itself already succeeded
func (r *notifyingRepo) publish(ctx context.Context, path string) {
	if err := r.bus.Publish(ctx, path); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("Failed to publish change notification")
	}
}
