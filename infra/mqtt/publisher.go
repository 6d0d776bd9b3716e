package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/powerplan/core/model"
)

// MockPublisher records plans instead of sending them.
type MockPublisher struct {
	Plans []model.ProductionPlan
	Fail  bool
	mu    sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the plan or returns an error if configured to fail.
func (m *MockPublisher) Publish(_ context.Context, plan model.ProductionPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Plans = append(m.Plans, plan)
	return nil
}

// Published returns a copy of the recorded plans.
func (m *MockPublisher) Published() []model.ProductionPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ProductionPlan(nil), m.Plans...)
}

func (m *MockPublisher) Close() error { return nil }
