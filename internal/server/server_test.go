package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"
)

func testServer(handler http.Handler) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(handler, Options{
		Port:            0,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, logger)
}

func TestShutdown_HooksRunInReverseOrder(t *testing.T) {
	s := testServer(http.NotFoundHandler())

	var order []string
	for _, name := range []string{"mongodb", "redis", "metrics"} {
		s.OnShutdown(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	want := []string{"metrics", "redis", "mongodb"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestShutdown_JoinsHookErrors(t *testing.T) {
	s := testServer(http.NotFoundHandler())

	errMongo := errors.New("disconnect failed")
	ran := false
	s.OnShutdown("mongodb", func(ctx context.Context) error { return errMongo })
	s.OnShutdown("redis", func(ctx context.Context) error {
		ran = true
		return nil
	})

	err := s.Shutdown()
	if !errors.Is(err, errMongo) {
		t.Errorf("Shutdown() error = %v, want %v", err, errMongo)
	}
	if !ran {
		t.Error("later hooks must still run when one fails")
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := testServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	closed := make(chan struct{})
	s.OnShutdown("store", func(ctx context.Context) error {
		close(closed)
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	select {
	case <-closed:
	default:
		t.Error("shutdown hook did not run")
	}
}

func TestServe_ServeFailureRunsHooks(t *testing.T) {
	s := testServer(http.NotFoundHandler())

	closed := false
	s.OnShutdown("mongodb", func(ctx context.Context) error {
		closed = true
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	// A closed listener makes http.Server.Serve fail immediately.
	ln.Close()

	err = s.Serve(context.Background(), ln)
	if err == nil {
		t.Fatal("Serve() should fail on a closed listener")
	}
	if !closed {
		t.Error("shutdown hooks must run when serving fails")
	}
}
