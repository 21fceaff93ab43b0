package texshare

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// handle owns exactly one non-nil native pointer
// and releases it exactly once.
//
// Every native call made through a handle holds the
// read lock for its whole duration, release takes the
// write lock, so a pointer is never used after (or
// while) it is being released.
type handle struct {
	mu      sync.RWMutex
	ptr     unsafe.Pointer
	kind    ResourceKind
	release func(unsafe.Pointer)
}

// newHandle wraps ptr. It reports false
// and produces no handle for a nil pointer.
func newHandle(kind ResourceKind, ptr unsafe.Pointer, release func(unsafe.Pointer)) (*handle, bool) {
	if ptr == nil {
		return nil, false
	}

	trackAlloc(kind, ptr)
	Logger().Debug("native object created",
		zap.String("kind", string(kind)),
		zap.Uintptr("addr", uintptr(ptr)))

	return &handle{
		ptr:     ptr,
		kind:    kind,
		release: release,
	}, true
}

// with runs fn with the live pointer. It reports
// false without calling fn once the handle is released.
func (h *handle) with(fn func(ptr unsafe.Pointer)) bool {
	if h == nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.ptr == nil {
		return false
	}
	fn(h.ptr)

	return true
}

// alive reports whether the handle
// has not been released yet.
func (h *handle) alive() bool {
	if h == nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.ptr != nil
}

// pointer returns the raw pointer for identity
// comparisons only, nil after release.
func (h *handle) pointer() unsafe.Pointer {
	if h == nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.ptr
}

// close releases the native object. Only the
// first call releases and reports true.
func (h *handle) close() bool {
	if h == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ptr == nil {
		return false
	}

	ptr := h.ptr
	h.ptr = nil

	trackFree(ptr)
	if h.release != nil {
		h.release(ptr)
	}
	Logger().Debug("native object released",
		zap.String("kind", string(h.kind)),
		zap.Uintptr("addr", uintptr(ptr)))

	return true
}
