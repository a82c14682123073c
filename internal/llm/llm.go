package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jeeems/devbot/internal/models"
)

// Request is a single completion request against an inference provider.
type Request struct {
	System      string
	Prompt      string
	History     []models.ChatMessage
	MaxTokens   int
	Temperature float32
}

// Provider is an LLM inference backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Service wraps a provider with a concurrency cap so a burst of commands
// cannot flood the upstream API.
type Service struct {
	provider Provider
	rateChan chan struct{} // Token bucket
}

func NewService(provider Provider, concurrentReqs int) *Service {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &Service{
		provider: provider,
		rateChan: rateChan,
	}
}

// acquireRate blocks until a rate slot is available
func (s *Service) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for %s rate slot", s.provider.Name())
	}
}

func (s *Service) releaseRate() {
	s.rateChan <- struct{}{}
}

func (s *Service) Name() string {
	return s.provider.Name()
}

func (s *Service) Complete(ctx context.Context, req Request) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	return s.provider.Complete(ctx, req)
}

// Close releases provider resources when the backend holds any.
func (s *Service) Close() {
	if closer, ok := s.provider.(io.Closer); ok {
		closer.Close()
	}
}
