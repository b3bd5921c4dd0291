package jobs

import (
	"context"
	"log"
	"time"
)

// Refresher is the unit of work the worker runs on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Worker runs a Refresher on a fixed interval until stopped. A failed
// tick is logged and the next tick runs as scheduled.
type Worker struct {
	refresher Refresher
	interval  time.Duration
	stopChan  chan struct{}
	doneChan  chan struct{}
}

func NewWorker(refresher Refresher, interval time.Duration) *Worker {
	return &Worker{
		refresher: refresher,
		interval:  interval,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start blocks, ticking every interval, until the context is cancelled
// or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("jobs: refresh worker started, interval %v", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("jobs: refresh worker stopped, context cancelled")
			return
		case <-w.stopChan:
			log.Println("jobs: refresh worker stopped")
			return
		case <-ticker.C:
			if err := w.refresher.Refresh(ctx); err != nil {
				log.Printf("jobs: refresh failed: %v", err)
			}
		}
	}
}

// Stop signals the worker to exit and waits for the current tick to finish.
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
}
