//go:build !leakcheck

package texshare

import "unsafe"

func trackAlloc(ResourceKind, unsafe.Pointer) {}
func trackFree(unsafe.Pointer)                {}

// DumpLeaks reports nothing without the leakcheck tag.
func DumpLeaks() []LeakRecord { return nil }

// ResetTracker does nothing without the leakcheck tag.
func ResetTracker() {}

// TrackedCount is 0 without the leakcheck tag.
func TrackedCount() int { return 0 }
