package texshare

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// frameBridge keeps a subscriber's new-frame closure
// alive and reachable from native code.
//
// Native code never sees a Go pointer: the bridge is
// registered under an integer token which travels as the
// callback's user data. The trampoline only posts into a
// one-slot channel; the closure runs on the bridge's own
// goroutine, never on the native thread. Notifications that
// arrive while one is pending are merged.
type frameBridge struct {
	token      uintptr
	callback   func()
	pending    chan struct{}
	done       chan struct{}
	exited     chan struct{}
	once       sync.Once
	dispatcher atomic.Uint64 // goroutine running callback
}

// Registry to map callback tokens to bridges
// (C callbacks can't hold Go pointers directly)
var (
	bridgeRegistry = make(map[uintptr]*frameBridge)
	bridgeMu       sync.RWMutex
	bridgeNextID   uintptr
)

func registerBridge(b *frameBridge) uintptr {
	bridgeMu.Lock()
	defer bridgeMu.Unlock()
	bridgeNextID++
	id := bridgeNextID
	bridgeRegistry[id] = b
	return id
}

func unregisterBridge(id uintptr) {
	bridgeMu.Lock()
	defer bridgeMu.Unlock()
	delete(bridgeRegistry, id)
}

func lookupBridge(id uintptr) *frameBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return bridgeRegistry[id]
}

// registeredBridges returns the number of live bridges.
func registeredBridges() int {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return len(bridgeRegistry)
}

// newFrameBridge registers callback and starts its
// dispatcher. A nil callback yields a nil bridge.
func newFrameBridge(callback func()) *frameBridge {
	if callback == nil {
		return nil
	}

	b := &frameBridge{
		callback: callback,
		pending:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	b.token = registerBridge(b)

	go b.dispatch()

	return b
}

func (b *frameBridge) dispatch() {
	defer close(b.exited)
	b.dispatcher.Store(goroutineID())

	for {
		select {
		case <-b.done:
			return

		case <-b.pending:
			select {
			case <-b.done:
				return
			default:
			}
			b.invoke()
		}
	}
}

func (b *frameBridge) invoke() {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("new frame callback panicked",
				zap.Uintptr("token", b.token),
				zap.Any("panic", r))
		}
	}()

	b.callback()
}

// notify posts a new-frame notification
// without blocking the calling thread.
func (b *frameBridge) notify() {
	select {
	case b.pending <- struct{}{}:
	default:
	}
}

// tokenOf returns the user data value for
// native registration, 0 for no callback.
func (b *frameBridge) tokenOf() uintptr {
	if b == nil {
		return 0
	}

	return b.token
}

// close unregisters the bridge and waits for a
// running callback to return. Later native calls
// carrying the old token are dropped. Called from
// inside the callback it returns at once and the
// dispatcher exits when the callback does.
func (b *frameBridge) close() {
	if b == nil {
		return
	}

	b.once.Do(func() {
		unregisterBridge(b.token)
		close(b.done)

		if goroutineID() == b.dispatcher.Load() {
			Logger().Debug("new frame callback closed its own bridge",
				zap.Uintptr("token", b.token))
			return
		}
		<-b.exited
	})
}

// goroutineID parses the current goroutine's id from
// the "goroutine N [status]:" stack header, 0 if absent.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}

	return id
}

// dispatchNewFrame is the single entry point for native
// new-frame callbacks, called with the registered token.
func dispatchNewFrame(token uintptr) {
	b := lookupBridge(token)
	if b == nil {
		return
	}

	b.notify()
}
