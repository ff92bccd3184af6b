// Package publish decouples interactive throne commands from shared-store
// writes. Commands hand over a full monarch snapshot and return immediately;
// a single consumer goroutine drains the queue in arrival order.
package publish

import (
	"log"

	"crownhold/internal/domain/royal"
)

// SnapshotWriter lands one complete snapshot in the shared store.
type SnapshotWriter interface {
	WriteSnapshot(snapshot royal.Monarch) error
}

const defaultQueueSize = 64

// Worker implements ports.StatePublisher. Publishes are at-most-once: a
// full queue drops the snapshot rather than blocking the caller, and a
// failed write is logged and skipped. A later snapshot supersedes any
// dropped one.
type Worker struct {
	writer SnapshotWriter
	queue  chan royal.Monarch
	done   chan struct{}
}

func NewWorker(writer SnapshotWriter) *Worker {
	return NewWorkerWithQueue(writer, defaultQueueSize)
}

func NewWorkerWithQueue(writer SnapshotWriter, size int) *Worker {
	w := &Worker{
		writer: writer,
		queue:  make(chan royal.Monarch, size),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) Publish(snapshot royal.Monarch) {
	select {
	case w.queue <- snapshot:
	default:
		log.Printf("publish: queue full, dropping snapshot for %s", snapshot.Name)
	}
}

// Close stops accepting snapshots and blocks until the queue drains.
func (w *Worker) Close() {
	close(w.queue)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for snapshot := range w.queue {
		if err := w.writer.WriteSnapshot(snapshot); err != nil {
			log.Printf("publish: write failed for %s: %v", snapshot.Name, err)
		}
	}
}
