package texshare

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Directory lists the Syphon servers currently
// published on this machine. It is a process-wide
// value that is never torn down.
type Directory struct {
	lib        syphonNative
	ptr        unsafe.Pointer
	generation atomic.Uint64
}

// SharedDirectory returns the process-wide server
// directory, or ErrUnavailable when Syphon is not
// present. Check the error on every call.
func SharedDirectory() (*Directory, error) {
	nativeMu.Lock()
	defer nativeMu.Unlock()

	if directoryVal != nil {
		return directoryVal, nil
	}

	ptr := syphonTable.DirectoryShared()
	if ptr == nil {
		return nil, errors.Wrap(ErrUnavailable, "syphon server directory")
	}

	directoryVal = &Directory{
		lib: syphonTable,
		ptr: ptr,
	}

	return directoryVal, nil
}

func (dir *Directory) currentGeneration() uint64 {
	return dir.generation.Load()
}

// Count returns the number of servers
// the directory currently knows about.
func (dir *Directory) Count() int {
	return dir.lib.DirectoryServersCount(dir.ptr)
}

// ServerAt returns a borrowed description of the server
// at index. It shares the validity window of the latest
// snapshot.
func (dir *Directory) ServerAt(index int) (*ServerDescription, bool) {
	if index < 0 {
		return nil, false
	}

	ptr := dir.lib.DirectoryServerAt(dir.ptr, index)

	return borrowedDescription(dir.lib, ptr, dir, dir.currentGeneration())
}

// Servers takes a new snapshot of all servers.
//
// Taking a snapshot invalidates the borrowed
// descriptions of every earlier snapshot. Clone any
// description that must outlive the next call.
func (dir *Directory) Servers() Snapshot {
	generation := dir.generation.Add(1)
	count := dir.lib.DirectoryServersCount(dir.ptr)

	descs := make([]*ServerDescription, 0, count)
	for i := 0; i < count; i++ {
		ptr := dir.lib.DirectoryServerAt(dir.ptr, i)
		desc, ok := borrowedDescription(dir.lib, ptr, dir, generation)
		if !ok {
			continue
		}
		descs = append(descs, desc)
	}

	return Snapshot{descs: descs}
}

// ServersMatching queries servers by name and
// application name. An empty filter matches anything
// on that axis, so ServersMatching("", "") lists every
// server as owned descriptions.
//
// The result must be closed.
func (dir *Directory) ServersMatching(name, appName string) (*MatchResult, error) {
	lib := dir.lib
	ptr := lib.DirectoryServersMatching(dir.ptr, cName(name), cName(appName))

	h, ok := newHandle(ResDirectoryMatch, ptr, lib.MatchRelease)
	if !ok {
		return nil, errors.Wrap(ErrCreateFailed, "syphon directory query")
	}

	return &MatchResult{lib: lib, h: h}, nil
}

// Snapshot is a point-in-time list of borrowed
// server descriptions.
type Snapshot struct {
	descs []*ServerDescription
}

// Len returns the number of servers captured.
func (snap Snapshot) Len() int {
	return len(snap.descs)
}

// At returns the borrowed description at index.
func (snap Snapshot) At(index int) (*ServerDescription, bool) {
	if index < 0 || index >= len(snap.descs) {
		return nil, false
	}

	return snap.descs[index], true
}

// All returns the captured descriptions.
func (snap Snapshot) All() []*ServerDescription {
	descs := make([]*ServerDescription, len(snap.descs))
	copy(descs, snap.descs)

	return descs
}

// MatchResult holds the owned result of a
// directory query.
type MatchResult struct {
	lib syphonNative
	h   *handle
}

// Len returns the number of matched servers.
func (match *MatchResult) Len() int {
	count := 0
	match.h.with(func(ptr unsafe.Pointer) {
		count = match.lib.MatchCount(ptr)
	})

	return count
}

// At returns the owned description at index.
// The caller must close it.
func (match *MatchResult) At(index int) (*ServerDescription, bool) {
	if index < 0 {
		return nil, false
	}

	var descPtr unsafe.Pointer
	match.h.with(func(ptr unsafe.Pointer) {
		descPtr = match.lib.MatchAt(ptr, index)
	})

	return ownedDescription(match.lib, descPtr)
}

// Each yields every matched server as an owned
// description, closing it once fn returns. Clone the
// description inside fn to keep it. Returning false
// stops the iteration.
func (match *MatchResult) Each(fn func(desc *ServerDescription) bool) {
	count := match.Len()

	for i := 0; i < count; i++ {
		desc, ok := match.At(i)
		if !ok {
			continue
		}

		more := fn(desc)
		desc.Close()

		if !more {
			return
		}
	}
}

// Take returns every matched server as an
// owned description. The caller closes each.
func (match *MatchResult) Take() []*ServerDescription {
	count := match.Len()

	descs := make([]*ServerDescription, 0, count)
	for i := 0; i < count; i++ {
		if desc, ok := match.At(i); ok {
			descs = append(descs, desc)
		}
	}

	return descs
}

// Close releases the query result. Descriptions
// already taken out of it stay valid.
func (match *MatchResult) Close() {
	if match == nil {
		return
	}

	match.h.close()
}

// NotificationAnnounce returns the notification
// name posted when a new server appears.
func NotificationAnnounce() (string, bool) {
	return notificationName(notificationAnnounce)
}

// NotificationUpdate returns the notification name
// posted when a server changes its description.
func NotificationUpdate() (string, bool) {
	return notificationName(notificationUpdate)
}

// NotificationRetire returns the notification
// name posted when a server goes away.
func NotificationRetire() (string, bool) {
	return notificationName(notificationRetire)
}

func notificationName(kind notificationKind) (string, bool) {
	name, ok := syphonLib().NotificationName(kind)

	return decodeNative(name, ok)
}

// cName returns s if it can cross into C,
// empty (NULL) when it holds a NUL byte.
func cName(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			Logger().Warn("string with NUL byte passed as NULL",
				zap.Int("offset", i))
			return ""
		}
	}

	return s
}
