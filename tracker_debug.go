//go:build leakcheck

package texshare

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unsafe"
)

type leakTable struct {
	mu   sync.Mutex
	seq  uint64
	live map[uintptr]LeakRecord
}

var leaks = &leakTable{live: make(map[uintptr]LeakRecord)}

// creatorStack formats the stack above the handle
// constructor, skipping tracker and handle frames.
func creatorStack() string {
	var pcs [12]uintptr
	n := runtime.Callers(4, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasSuffix(frame.Function, ".newHandle") {
			fmt.Fprintf(&b, "  %s\n    %s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}

	return b.String()
}

func trackAlloc(kind ResourceKind, ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	stack := creatorStack()

	leaks.mu.Lock()
	defer leaks.mu.Unlock()

	leaks.seq++
	leaks.live[uintptr(ptr)] = LeakRecord{
		Kind:  kind,
		Addr:  uintptr(ptr),
		Seq:   leaks.seq,
		Stack: stack,
	}
}

func trackFree(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	leaks.mu.Lock()
	defer leaks.mu.Unlock()

	delete(leaks.live, uintptr(ptr))
}

// DumpLeaks lists unreleased objects, oldest first.
func DumpLeaks() []LeakRecord {
	leaks.mu.Lock()
	out := make([]LeakRecord, 0, len(leaks.live))
	for _, rec := range leaks.live {
		out = append(out, rec)
	}
	leaks.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	return out
}

// ResetTracker forgets every recorded object.
func ResetTracker() {
	leaks.mu.Lock()
	defer leaks.mu.Unlock()

	leaks.live = make(map[uintptr]LeakRecord)
}

// TrackedCount returns the number of unreleased objects.
func TrackedCount() int {
	leaks.mu.Lock()
	defer leaks.mu.Unlock()

	return len(leaks.live)
}
