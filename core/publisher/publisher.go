package publisher

import (
	"context"
	"errors"

	"github.com/kilianp07/powerplan/core/model"
)

// Publisher delivers computed production plans to the plants or to
// downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, plan model.ProductionPlan) error
	Close() error
}

// NopPublisher drops every plan.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.ProductionPlan) error { return nil }
func (NopPublisher) Close() error                                       { return nil }

// MultiPublisher fans out plans to several publishers.
type MultiPublisher struct {
	Publishers []Publisher
}

// NewMultiPublisher creates a MultiPublisher with the provided publishers.
func NewMultiPublisher(pubs ...Publisher) *MultiPublisher {
	return &MultiPublisher{Publishers: pubs}
}

// Publish forwards the plan to every publisher and joins their errors.
func (m *MultiPublisher) Publish(ctx context.Context, plan model.ProductionPlan) error {
	var errs []error
	for _, p := range m.Publishers {
		if err := p.Publish(ctx, plan); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher.
func (m *MultiPublisher) Close() error {
	var errs []error
	for _, p := range m.Publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
