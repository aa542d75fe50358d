package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeService struct {
	mu      sync.Mutex
	initErr error
	started chan struct{}
	stopped int
}

func newFakeService(initErr error) *fakeService {
	return &fakeService{initErr: initErr, started: make(chan struct{}, 1)}
}

func (f *fakeService) Init() error { return f.initErr }
func (f *fakeService) Run(ctx context.Context) {
	f.started <- struct{}{}
}
func (f *fakeService) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}
func (f *fakeService) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func TestManagerRunStopsOnContextDone(t *testing.T) {
	a, b := newFakeService(nil), newFakeService(nil)
	m := NewManager(nopLogger{})
	m.AddService(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	for _, s := range []*fakeService{a, b} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatal("service was not started")
		}
	}
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, 1, a.stops())
	assert.Equal(t, 1, b.stops())
}

func TestManagerInitFailureStopsStartedServices(t *testing.T) {
	a := newFakeService(nil)
	broken := newFakeService(errors.New("boom"))
	m := NewManager(nopLogger{})
	m.AddService(a, broken)

	err := m.Run(context.Background())
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, a.stops())
	assert.Equal(t, 0, broken.stops())
}
