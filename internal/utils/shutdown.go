package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownManager cancels the base context on SIGINT/SIGTERM and drains
// registered cleanup tasks before letting the process exit. Tasks run in
// reverse registration order, so dependents close before the resources they
// use (HTTP server before Mongo and Redis).
type ShutdownManager struct {
	cancel  context.CancelFunc
	timeout time.Duration
	mu      sync.Mutex
	tasks   []func(context.Context) error
	once    sync.Once
	done    chan struct{}
}

// NewShutdownManager derives a cancelable context from ctx. The timeout
// bounds the whole drain, shared by all tasks.
func NewShutdownManager(ctx context.Context, timeout time.Duration) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &ShutdownManager{
		cancel:  cancel,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (sm *ShutdownManager) Register(task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tasks = append(sm.tasks, task)
}

// StartListening triggers Shutdown once a termination signal arrives.
func (sm *ShutdownManager) StartListening() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("[SHUTDOWN] Received signal: %v", sig)
		sm.Shutdown()
	}()
}

// Shutdown cancels the base context and runs every registered task, newest
// first, within the drain timeout. It is idempotent; every caller blocks
// until the first invocation has finished.
func (sm *ShutdownManager) Shutdown() {
	sm.once.Do(func() {
		defer close(sm.done)

		sm.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
		defer cancel()

		sm.mu.Lock()
		tasks := make([]func(context.Context) error, len(sm.tasks))
		copy(tasks, sm.tasks)
		sm.mu.Unlock()

		for i := len(tasks) - 1; i >= 0; i-- {
			if err := tasks[i](ctx); err != nil {
				log.Printf("[SHUTDOWN] Cleanup error: %v", err)
			}
		}

		log.Println("[SHUTDOWN] Graceful shutdown complete")
	})
	<-sm.done
}

// Done is closed once the drain has completed; main blocks on it instead of
// exiting from inside the signal handler.
func (sm *ShutdownManager) Done() <-chan struct{} {
	return sm.done
}
