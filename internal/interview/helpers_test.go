package interview

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// scriptedClient replays a fixed sequence of replies and errors, recording
// every prompt it receives.
type scriptedClient struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

func (c *scriptedClient) Send(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	idx := len(c.prompts) - 1

	var err error
	if idx < len(c.errs) {
		err = c.errs[idx]
	}
	if err != nil {
		return "", err
	}

	if idx < len(c.replies) {
		return c.replies[idx], nil
	}
	return "", nil
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// recordingSaver captures the persisted record.
type recordingSaver struct {
	mu      sync.Mutex
	records []ResultRecord
	err     error
}

func (s *recordingSaver) SaveResult(_ context.Context, record ResultRecord) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.records = append(s.records, record)
	return uint(len(s.records)), nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
