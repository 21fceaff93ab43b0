package texshare

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// endpoint is the lifecycle shared by servers and
// clients: created, active, stopped, released. Native
// stop runs once and always before release.
type endpoint struct {
	h      *handle
	stopFn func(ptr unsafe.Pointer)

	state   sync.RWMutex
	stopped bool

	frameOut atomic.Bool
}

func (e *endpoint) init(h *handle, stopFn func(ptr unsafe.Pointer)) {
	e.h = h
	e.stopFn = stopFn
}

// active runs fn while the endpoint is neither
// stopped nor released.
func (e *endpoint) active(fn func(ptr unsafe.Pointer)) bool {
	e.state.RLock()
	defer e.state.RUnlock()

	if e.stopped {
		return false
	}

	return e.h.with(fn)
}

// stop calls the native stop once. Later calls
// are no-ops and report false.
func (e *endpoint) stop() bool {
	e.state.Lock()
	defer e.state.Unlock()

	if e.stopped {
		return false
	}
	e.stopped = true

	return e.h.with(func(ptr unsafe.Pointer) {
		e.stopFn(ptr)
		Logger().Debug("native object stopped",
			zap.String("kind", string(e.h.kind)))
	})
}

// isStopped reports whether stop has run.
func (e *endpoint) isStopped() bool {
	e.state.RLock()
	defer e.state.RUnlock()

	return e.stopped
}

// release stops the endpoint if needed,
// then releases the native object once.
func (e *endpoint) release() {
	e.stop()
	e.h.close()
}

// acquireFrame fetches a frame, allowing only one
// outstanding frame per endpoint. The caller must
// call frameReleased when the frame is closed.
func (e *endpoint) acquireFrame(fetch func(ptr unsafe.Pointer) unsafe.Pointer) (unsafe.Pointer, error) {
	if !e.frameOut.CompareAndSwap(false, true) {
		Logger().Warn("frame requested while previous frame is outstanding",
			zap.String("kind", string(e.h.kind)))
		return nil, ErrFrameOutstanding
	}

	var frame unsafe.Pointer
	if !e.active(func(ptr unsafe.Pointer) {
		frame = fetch(ptr)
	}) {
		e.frameOut.Store(false)
		return nil, errors.Wrap(ErrClosed, string(e.h.kind))
	}

	if frame == nil {
		e.frameOut.Store(false)
		return nil, ErrNoFrame
	}

	return frame, nil
}

func (e *endpoint) frameReleased() {
	e.frameOut.Store(false)
}
