package fanout_test

import (
	"context"
	"errors"
	"sync"

	"ordertracking/internal/core/domain/model/kernel"
)

var errOutboxFull = errors.New("outbox full")

type fakeSubscriber struct {
	id kernel.UUID

	mu       sync.Mutex
	payloads [][]byte
	failing  bool
	closed   bool
	onSend   func()
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{id: kernel.NewUUID()}
}

func (s *fakeSubscriber) ID() kernel.UUID {
	return s.id
}

func (s *fakeSubscriber) Send(_ context.Context, payload []byte) error {
	s.mu.Lock()
	hook := s.onSend
	if s.failing {
		s.mu.Unlock()
		return errOutboxFull
	}
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (s *fakeSubscriber) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSubscriber) received() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.payloads...)
}

func (s *fakeSubscriber) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

func (s *fakeSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
