package testsupport

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"batchupload/internal/services/trint"
)

// StubUploader records upload calls and tracks how many run at once.
// Result decides the outcome per path; a nil Result succeeds with a
// fixed Trint ID.
type StubUploader struct {
	Result func(path string) (trint.Outcome, error)
	// Delay holds each call open so overlapping uploads can be observed.
	Delay time.Duration
	// Gate, when positive, holds every call until Gate calls are in flight
	// together. GateTimeout (default one second) opens it regardless so a
	// runner that never reaches Gate finishes and shows a lower Peak.
	Gate        int
	GateTimeout time.Duration

	mu       sync.Mutex
	calls    []trint.Request
	inFlight atomic.Int32
	peak     atomic.Int32
	gate     chan struct{}
	gateOnce sync.Once
}

// Upload implements the batch uploader contract.
func (s *StubUploader) Upload(ctx context.Context, req trint.Request) (trint.Outcome, error) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if current <= peak || s.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if err := s.waitForGate(ctx, int(current)); err != nil {
		return trint.Outcome{}, err
	}

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return trint.Outcome{}, ctx.Err()
		}
	}

	if s.Result != nil {
		return s.Result(req.Path)
	}
	return trint.Outcome{Success: true, TrintID: "trint-" + req.UploadID, StatusCode: 200}, nil
}

func (s *StubUploader) waitForGate(ctx context.Context, current int) error {
	if s.Gate <= 0 {
		return nil
	}
	gate := s.gateChan()
	if current >= s.Gate {
		s.openGate()
	}
	timeout := s.GateTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-gate:
	case <-timer.C:
		s.openGate()
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (s *StubUploader) gateChan() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate == nil {
		s.gate = make(chan struct{})
	}
	return s.gate
}

func (s *StubUploader) openGate() {
	gate := s.gateChan()
	s.gateOnce.Do(func() { close(gate) })
}

// Calls returns a copy of the recorded requests in arrival order.
func (s *StubUploader) Calls() []trint.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trint.Request, len(s.calls))
	copy(out, s.calls)
	return out
}

// Peak returns the highest number of simultaneous calls observed.
func (s *StubUploader) Peak() int {
	return int(s.peak.Load())
}
