package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_RunAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := New(handler, 0, time.Second, time.Second, 2*time.Second, testLogger())

	var mu sync.Mutex
	var order []string
	record := func(name string) ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("first", record("first"))
	srv.OnShutdown("second", record("second"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not become ready")
	}

	addr := srv.Addr()
	if strings.HasSuffix(addr, ":0") {
		t.Fatalf("expected a bound port, got %s", addr)
	}
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		addr = "127.0.0.1" + addr[i:]
	}

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("unexpected body %q", body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(order, ",") != "second,first" {
		t.Errorf("expected LIFO shutdown order, got %v", order)
	}
}

func TestServer_ShutdownErrorsAreCombined(t *testing.T) {
	srv := New(http.NotFoundHandler(), 0, time.Second, time.Second, time.Second, testLogger())

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	srv.OnShutdown("a", func(ctx context.Context) error { return errA })
	srv.OnShutdown("ok", func(ctx context.Context) error { return nil })
	srv.OnShutdown("b", func(ctx context.Context) error { return errB })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	<-srv.Ready()
	cancel()

	err := <-done
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both component errors, got %v", err)
	}
}
