package viewport

import "sync"

type Signal string

const (
	SignalResize            Signal = "resize"
	SignalOrientationChange Signal = "orientationchange"
)

// Environment is the runtime the observer samples. Touch capability is an
// opaque boolean oracle re-read on every recomputation.
type Environment interface {
	Viewport() (width, height int)
	TouchCapable() bool
	Signals() <-chan Signal
}

// Observer keeps a current Classification derived from the environment. It
// computes once synchronously at construction, then recomputes per signal
// until Close.
type Observer struct {
	env      Environment
	onChange func(Classification)

	mu      sync.RWMutex
	current Classification

	done     chan struct{}
	finished chan struct{}
	closeOne sync.Once
}

// NewObserver builds an observer and starts listening. onChange may be nil;
// when set it is invoked for the initial computation and every recomputation.
func NewObserver(env Environment, onChange func(Classification)) *Observer {
	o := &Observer{
		env:      env,
		onChange: onChange,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	o.recompute()
	go o.listen()
	return o
}

func (o *Observer) Current() Classification {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// CurrentBreakpoint labels the current width with its bucket.
func (o *Observer) CurrentBreakpoint() Breakpoint {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return BreakpointFor(o.current.ScreenWidth)
}

// Close unregisters the signal listener and waits for it to finish.
func (o *Observer) Close() {
	o.closeOne.Do(func() {
		close(o.done)
	})
	<-o.finished
}

func (o *Observer) listen() {
	defer close(o.finished)
	signals := o.env.Signals()
	for {
		select {
		case <-o.done:
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			o.recompute()
		}
	}
}

func (o *Observer) recompute() {
	width, height := o.env.Viewport()
	classification := Classify(width, height, o.env.TouchCapable())

	o.mu.Lock()
	o.current = classification
	o.mu.Unlock()

	if o.onChange != nil {
		o.onChange(classification)
	}
}
