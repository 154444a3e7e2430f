package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/shipregistry/config"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func useMemoryStorage(t *testing.T) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = config.Config{StorageDriver: config.StorageMemory}
	t.Cleanup(func() { config.AppConfig = old })
}

func TestRunImport(t *testing.T) {
	useMemoryStorage(t)
	dir := t.TempDir()
	content := "name;planet;shipType;prodDate;isUsed;speed;crewSize\n" +
		"Daedalus;Earth;MILITARY;3019-01-01;false;0.5;120\n"
	if err := os.WriteFile(filepath.Join(dir, "fleet.csv"), []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := runImport(context.Background(), dir, 1); err != nil {
		t.Fatalf("import: %v", err)
	}

	if err := runImport(context.Background(), t.TempDir(), 1); err == nil || !strings.Contains(err.Error(), "no .csv files") {
		t.Fatalf("empty dir should fail, got %v", err)
	}
}

func TestRunMigrate_RejectsMemoryDriver(t *testing.T) {
	useMemoryStorage(t)
	if err := runMigrate(context.Background()); err == nil {
		t.Fatalf("migrate must refuse the memory driver")
	}
}
