// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package supervisor

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
)

type blockingService struct {
	started chan struct{}
}

func (s *blockingService) Serve(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestTreeRunsAndStopsServices(t *testing.T) {
	tree := NewTree(logging.NewSlogLoggerWith(logging.NewTestLogger(io.Discard)), TreeConfig{})

	storageSvc := &blockingService{started: make(chan struct{})}
	apiSvc := &blockingService{started: make(chan struct{})}
	tree.AddStorageService(storageSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	for _, ch := range []chan struct{}{storageSvc.started, apiSvc.started} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("service did not start")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}
}

type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	shutdown    chan struct{}
	closed      chan struct{}
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{shutdown: make(chan struct{}), closed: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.shutdown
	close(f.closed)
	return nil
}

func (f *fakeHTTPServer) Shutdown(_ context.Context) error {
	close(f.shutdown)
	return f.shutdownErr
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	srv := newFakeHTTPServer()
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	select {
	case <-srv.closed:
	default:
		t.Error("listener goroutine did not drain before return")
	}
}

func TestHTTPServiceStartupFailure(t *testing.T) {
	srv := newFakeHTTPServer()
	srv.listenErr = errors.New("address in use")
	svc := NewHTTPService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
}

func TestHTTPServiceString(t *testing.T) {
	if got := NewHTTPService(newFakeHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

type fakeMaintStore struct {
	prunes   atomic.Int64
	gcs      atomic.Int64
	pruneErr error
	gcErr    error
}

func (f *fakeMaintStore) PruneMonths(_ context.Context, _ time.Time) (int, error) {
	f.prunes.Add(1)
	return 1, f.pruneErr
}

func (f *fakeMaintStore) RunGC() error {
	f.gcs.Add(1)
	return f.gcErr
}

func TestMaintenanceServiceTicks(t *testing.T) {
	store := &fakeMaintStore{}
	svc := NewMaintenanceService(store, 10*time.Millisecond, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if store.prunes.Load() == 0 {
		t.Error("expected at least one prune tick")
	}
	if store.gcs.Load() == 0 {
		t.Error("expected at least one gc tick")
	}
}

func TestMaintenanceServiceSurvivesErrors(t *testing.T) {
	store := &fakeMaintStore{
		pruneErr: errors.New("prune failed"),
		gcErr:    errors.New("gc failed"),
	}
	svc := NewMaintenanceService(store, 10*time.Millisecond, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	_ = svc.Serve(ctx)
	if store.prunes.Load() < 2 {
		t.Errorf("prune ticks = %d, want loop to continue past errors", store.prunes.Load())
	}
}
