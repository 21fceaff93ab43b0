package texshare

import (
	"context"
	"sync"
	"time"
	"unsafe"

	"github.com/pkg/errors"
)

// SenderInfo describes a Spout sender found by name.
type SenderInfo struct {
	Width       uint32
	Height      uint32
	ShareHandle uintptr // DirectX shared texture HANDLE
	Format      uint32  // DXGI format
}

// spoutCore is the single native Spout object behind
// both roles. Discovery, frame sync, memory buffers and
// settings work the same for senders and receivers.
type spoutCore struct {
	lib       spoutNative
	h         *handle
	releaseFn func(ptr unsafe.Pointer)
	closeOnce sync.Once
}

func newSpoutCore(role string, releaseFn func(lib spoutNative) func(ptr unsafe.Pointer)) (*spoutCore, error) {
	lib := spoutLib()
	ptr := lib.Create()

	h, ok := newHandle(ResSpout, ptr, lib.Destroy)
	if !ok {
		return nil, errors.Wrapf(ErrUnavailable, "spout %s", role)
	}

	return &spoutCore{
		lib:       lib,
		h:         h,
		releaseFn: releaseFn(lib),
	}, nil
}

// close releases the role, then destroys the
// native object, exactly once.
func (core *spoutCore) close() {
	core.closeOnce.Do(func() {
		core.h.with(func(ptr unsafe.Pointer) {
			core.releaseFn(ptr)
		})
		core.h.close()
	})
}

// SenderCount returns the number of
// registered senders.
func (core *spoutCore) SenderCount() int {
	count := 0
	core.h.with(func(ptr unsafe.Pointer) {
		count = core.lib.SenderCount(ptr)
	})

	return count
}

// SenderNameAt returns the name of the sender at
// index, absent when index is out of range.
func (core *spoutCore) SenderNameAt(index int) (string, bool) {
	if index < 0 {
		return "", false
	}

	var (
		name string
		ok   bool
	)
	core.h.with(func(ptr unsafe.Pointer) {
		name, ok = core.lib.SenderNameAt(ptr, index)
	})

	return decodeNative(name, ok)
}

// SenderNames lists every registered sender.
func (core *spoutCore) SenderNames() []string {
	count := core.SenderCount()

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if name, ok := core.SenderNameAt(i); ok {
			names = append(names, name)
		}
	}

	return names
}

// FindSender reports whether a sender
// with this name is registered.
func (core *spoutCore) FindSender(name string) bool {
	if cName(name) == "" {
		return false
	}

	found := false
	core.h.with(func(ptr unsafe.Pointer) {
		found = core.lib.FindSenderName(ptr, name)
	})

	return found
}

// ActiveSender returns the name of the
// machine-wide active sender.
func (core *spoutCore) ActiveSender() (string, bool) {
	var (
		name string
		ok   bool
	)
	core.h.with(func(ptr unsafe.Pointer) {
		name, ok = core.lib.ActiveSender(ptr)
	})
	if name == "" {
		return "", false
	}

	return decodeNative(name, ok)
}

// SetActiveSender makes name the active sender.
func (core *spoutCore) SetActiveSender(name string) bool {
	set := false
	core.h.with(func(ptr unsafe.Pointer) {
		set = core.lib.SetActiveSender(ptr, cName(name))
	})

	return set
}

// SenderInfo returns size, share handle and
// format of the named sender.
func (core *spoutCore) SenderInfo(name string) (SenderInfo, bool) {
	if cName(name) == "" {
		return SenderInfo{}, false
	}

	var (
		info SenderInfo
		ok   bool
	)
	core.h.with(func(ptr unsafe.Pointer) {
		info, ok = core.lib.SenderInfo(ptr, name)
	})

	return info, ok
}

// MaxSenders returns the number of senders
// Spout allows to register.
func (core *spoutCore) MaxSenders() int {
	limit := 0
	core.h.with(func(ptr unsafe.Pointer) {
		limit = core.lib.MaxSenders(ptr)
	})

	return limit
}

// SetFrameSync signals that a new frame of the
// named sender (empty for this one) is ready.
func (core *spoutCore) SetFrameSync(name string) {
	core.h.with(func(ptr unsafe.Pointer) {
		core.lib.SetFrameSync(ptr, cName(name))
	})
}

// WaitFrameSync waits up to timeout for the named
// sender's frame signal. A zero timeout polls.
func (core *spoutCore) WaitFrameSync(name string, timeout time.Duration) bool {
	ms := timeout.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if ms > int64(^uint32(0)) {
		ms = int64(^uint32(0))
	}

	signalled := false
	core.h.with(func(ptr unsafe.Pointer) {
		signalled = core.lib.WaitFrameSync(ptr, cName(name), uint32(ms))
	})

	return signalled
}

// frameSyncSlice bounds each native wait made
// by WaitFrameSyncContext.
const frameSyncSlice = 50 * time.Millisecond

// WaitFrameSyncContext waits for the named sender's
// frame signal until ctx is done.
func (core *spoutCore) WaitFrameSyncContext(ctx context.Context, name string) bool {
	for {
		if err := ctx.Err(); err != nil {
			return false
		}
		if !core.h.alive() {
			return false
		}

		slice := frameSyncSlice
		if deadline, ok := ctx.Deadline(); ok {
			if left := time.Until(deadline); left < slice {
				slice = left
			}
		}

		if core.WaitFrameSync(name, slice) {
			return true
		}
	}
}

// EnableFrameSync turns frame sync on or off.
func (core *spoutCore) EnableFrameSync(enabled bool) {
	core.h.with(func(ptr unsafe.Pointer) {
		core.lib.EnableFrameSync(ptr, enabled)
	})
}

// CloseFrameSync frees the frame sync events.
func (core *spoutCore) CloseFrameSync() {
	core.h.with(func(ptr unsafe.Pointer) {
		core.lib.CloseFrameSync(ptr)
	})
}

// IsFrameSyncEnabled reports whether frame
// sync is on.
func (core *spoutCore) IsFrameSyncEnabled() bool {
	enabled := false
	core.h.with(func(ptr unsafe.Pointer) {
		enabled = core.lib.IsFrameSyncEnabled(ptr)
	})

	return enabled
}

// WriteMemoryBuffer writes data to the named
// sender's shared memory buffer.
func (core *spoutCore) WriteMemoryBuffer(name string, data []byte) bool {
	if cName(name) == "" || len(data) > int(^uint32(0)>>1) {
		return false
	}

	written := false
	core.h.with(func(ptr unsafe.Pointer) {
		written = core.lib.WriteMemoryBuffer(ptr, name, data)
	})

	return written
}

// ReadMemoryBuffer reads the named sender's shared
// memory buffer into out and returns the byte count.
func (core *spoutCore) ReadMemoryBuffer(name string, out []byte) int {
	if cName(name) == "" || len(out) == 0 {
		return 0
	}
	if len(out) > int(^uint32(0)>>1) {
		out = out[:int(^uint32(0)>>1)]
	}

	n := 0
	core.h.with(func(ptr unsafe.Pointer) {
		n = core.lib.ReadMemoryBuffer(ptr, name, out)
	})
	if n < 0 {
		return 0
	}
	if n > len(out) {
		return len(out)
	}

	return n
}

// BufferMode reports whether sender
// frame buffering is on.
func (core *spoutCore) BufferMode() bool {
	active := false
	core.h.with(func(ptr unsafe.Pointer) {
		active = core.lib.BufferMode(ptr)
	})

	return active
}

// SetBufferMode turns sender frame
// buffering on or off.
func (core *spoutCore) SetBufferMode(active bool) {
	core.h.with(func(ptr unsafe.Pointer) {
		core.lib.SetBufferMode(ptr, active)
	})
}

// Buffers returns the number of frame buffers.
func (core *spoutCore) Buffers() int {
	n := 0
	core.h.with(func(ptr unsafe.Pointer) {
		n = core.lib.Buffers(ptr)
	})

	return n
}

// SetBuffers sets the number of frame buffers.
func (core *spoutCore) SetBuffers(buffers int) {
	core.h.with(func(ptr unsafe.Pointer) {
		core.lib.SetBuffers(ptr, buffers)
	})
}

// CPUMode reports whether textures are
// shared through system memory.
func (core *spoutCore) CPUMode() bool {
	cpu := false
	core.h.with(func(ptr unsafe.Pointer) {
		cpu = core.lib.CPUMode(ptr)
	})

	return cpu
}

// SetCPUMode switches CPU sharing mode.
func (core *spoutCore) SetCPUMode(cpu bool) bool {
	set := false
	core.h.with(func(ptr unsafe.Pointer) {
		set = core.lib.SetCPUMode(ptr, cpu)
	})

	return set
}
