package tasks

import "sync"

// outcome tracks one page's submission: its control, flow state, last result and last error.
type outcome[T any] struct {
	mu      sync.Mutex
	control *Control
	state   FlowState
	result  T
	err     error
}

func newOutcome[T any](label string) *outcome[T] {
	return &outcome[T]{control: NewControl(label)}
}

// begin acquires the control and enters Submitting.
func (o *outcome[T]) begin() error {
	if err := o.control.Acquire(); err != nil {
		return err
	}
	o.mu.Lock()
	o.state = Submitting
	o.mu.Unlock()
	return nil
}

// finish records the result or error and releases the control.
//
// On failure the previous result is kept and only the error changes.
func (o *outcome[T]) finish(result T, err error) (T, error) {
	defer o.control.Release()

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = Failed
		o.err = err
		var zero T
		return zero, err
	}
	o.state = ResultReady
	o.result = result
	o.err = nil
	return result, nil
}

// reject records a validation error without sending anything.
func (o *outcome[T]) reject(err error) error {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
	return err
}

func (o *outcome[T]) snapshot() (FlowState, T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.result, o.err
}

func (o *outcome[T]) setState(s FlowState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
