package texshare

import (
	"go.uber.org/zap"
)

// Leak tracking for native Syphon and Spout objects.
//
// Build with -tags leakcheck to record every handle
// between creation and release. Default builds keep no
// state and report no leaks.
//
//	defer func() {
//		texshare.LogLeaks()
//	}()

// ResourceKind names the native object behind a handle.
type ResourceKind string

const (
	ResDirectoryMatch ResourceKind = "SyphonServerDirectoryMatch"
	ResOptions        ResourceKind = "SyphonOptions"
	ResOpenGLServer   ResourceKind = "SyphonOpenGLServer"
	ResOpenGLClient   ResourceKind = "SyphonOpenGLClient"
	ResOpenGLImage    ResourceKind = "SyphonOpenGLImage"
	ResMetalServer    ResourceKind = "SyphonMetalServer"
	ResMetalClient    ResourceKind = "SyphonMetalClient"
	ResMetalTexture   ResourceKind = "SyphonMetalTexture"
	ResSpout          ResourceKind = "Spout"
)

// LeakRecord is a native object that was
// created and not yet released.
type LeakRecord struct {
	Kind  ResourceKind
	Addr  uintptr
	Seq   uint64 // creation order
	Stack string // creator's stack, leakcheck builds only
}

// LeakCounts groups the outstanding objects by kind.
func LeakCounts() map[ResourceKind]int {
	counts := make(map[ResourceKind]int)
	for _, rec := range DumpLeaks() {
		counts[rec.Kind]++
	}

	return counts
}

// LogLeaks writes one warning per outstanding object
// to the package logger and returns how many it found.
func LogLeaks() int {
	leaks := DumpLeaks()
	for _, rec := range leaks {
		Logger().Warn("native object never released",
			zap.String("kind", string(rec.Kind)),
			zap.Uintptr("addr", rec.Addr),
			zap.Uint64("seq", rec.Seq),
			zap.String("stack", rec.Stack))
	}

	return len(leaks)
}
