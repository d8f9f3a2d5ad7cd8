package composition

import (
	"sync"
	"time"

	avalonia "github.com/0xDB6/Avalonia"
)

// DefaultFrameInterval is the tick cadence used when none is configured,
// matching a 60 Hz display.
const DefaultFrameInterval = time.Second / 60

// FrameTask is one unit of per-frame work. A task error is logged and
// does not stop the loop; the next tick runs the task again.
type FrameTask func() error

// RenderLoop drives frame production on its own goroutine. While
// running it fires on a fixed interval and additionally whenever Wake
// is called; wakes between ticks are coalesced into a single frame. A
// tick with nothing to do is expected to be cheap, so tasks must be
// idempotent no-ops when no work is pending.
//
// Start and Stop are idempotent and safe to call from any goroutine.
// Stop returns once the in-flight frame, if any, has finished.
type RenderLoop struct {
	interval time.Duration
	wake     chan struct{}

	mu      sync.Mutex
	tasks   []FrameTask
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewRenderLoop creates a stopped loop. A non-positive interval selects
// DefaultFrameInterval.
func NewRenderLoop(interval time.Duration) *RenderLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &RenderLoop{
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// AddTask registers a task to run every frame, in registration order.
func (l *RenderLoop) AddTask(t FrameTask) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = append(l.tasks, t)
}

// Running reports whether the loop goroutine is active.
func (l *RenderLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Start launches the loop goroutine. Starting a running loop is a no-op.
func (l *RenderLoop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)
	avalonia.Logger().Info("composition: render loop started", "interval", l.interval)
}

// Stop shuts the loop down and waits for its current frame to finish.
// Stopping a stopped loop is a no-op.
func (l *RenderLoop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stop, done := l.stop, l.done
	l.mu.Unlock()
	close(stop)
	<-done
	avalonia.Logger().Info("composition: render loop stopped")
}

// Wake schedules a frame without waiting for the next timer tick.
// Multiple wakes before the frame runs coalesce into one.
func (l *RenderLoop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *RenderLoop) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		case <-l.wake:
		}
		l.frame()
	}
}

func (l *RenderLoop) frame() {
	l.mu.Lock()
	tasks := make([]FrameTask, len(l.tasks))
	copy(tasks, l.tasks)
	l.mu.Unlock()
	for _, t := range tasks {
		if err := t(); err != nil {
			avalonia.Logger().Warn("composition: frame task failed", "err", err)
		}
	}
}
