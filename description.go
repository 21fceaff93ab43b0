package texshare

import (
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/google/uuid"
)

// ServerDescription identifies one Syphon server.
//
// A description is either borrowed or owned. Borrowed
// descriptions come from a directory Snapshot and are
// only readable until the directory takes a newer
// snapshot; reads after that report absent. Owned
// descriptions hold their own native retain and stay
// valid until Close. Clone always produces an owned
// description.
type ServerDescription struct {
	lib   syphonNative
	ptr   unsafe.Pointer
	owned bool

	// Borrowed views only.
	dir        *Directory
	generation uint64

	mu       sync.RWMutex
	released bool
}

func borrowedDescription(lib syphonNative, ptr unsafe.Pointer, dir *Directory, generation uint64) (*ServerDescription, bool) {
	if ptr == nil {
		return nil, false
	}

	return &ServerDescription{
		lib:        lib,
		ptr:        ptr,
		dir:        dir,
		generation: generation,
	}, true
}

// ownedDescription adopts a pointer that already
// carries a retain on the caller's behalf.
func ownedDescription(lib syphonNative, ptr unsafe.Pointer) (*ServerDescription, bool) {
	if ptr == nil {
		return nil, false
	}

	return &ServerDescription{
		lib:   lib,
		ptr:   ptr,
		owned: true,
	}, true
}

// withLive runs fn with the native pointer while the
// description is readable.
func (desc *ServerDescription) withLive(fn func(ptr unsafe.Pointer)) bool {
	if desc == nil {
		return false
	}

	desc.mu.RLock()
	defer desc.mu.RUnlock()

	if desc.released {
		return false
	}
	if !desc.owned && desc.dir != nil && desc.dir.currentGeneration() != desc.generation {
		return false
	}
	fn(desc.ptr)

	return true
}

func (desc *ServerDescription) field(f descriptionField) (string, bool) {
	var (
		value string
		ok    bool
	)

	desc.withLive(func(ptr unsafe.Pointer) {
		value, ok = desc.lib.DescriptionString(ptr, f)
	})

	return decodeNative(value, ok)
}

// ID returns the server's unique identifier.
func (desc *ServerDescription) ID() (string, bool) {
	return desc.field(fieldUUID)
}

// UUID parses ID. Syphon identifiers are
// RFC 4122 strings; anything else is absent.
func (desc *ServerDescription) UUID() (uuid.UUID, bool) {
	id, ok := desc.ID()
	if !ok {
		return uuid.Nil, false
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return parsed, true
}

// Name returns the human-readable server name.
func (desc *ServerDescription) Name() (string, bool) {
	return desc.field(fieldName)
}

// AppName returns the name of the
// application hosting the server.
func (desc *ServerDescription) AppName() (string, bool) {
	return desc.field(fieldAppName)
}

// Owned reports whether the description
// holds its own native retain.
func (desc *ServerDescription) Owned() bool {
	return desc != nil && desc.owned
}

// Retain increments the native retain count. It does
// not make the description owned: the caller must pair
// it with Release. Prefer Clone.
func (desc *ServerDescription) Retain() {
	desc.withLive(func(ptr unsafe.Pointer) {
		desc.lib.DescriptionRetain(ptr)
	})
}

// Release decrements the native retain count
// taken by a matching Retain.
func (desc *ServerDescription) Release() {
	desc.withLive(func(ptr unsafe.Pointer) {
		desc.lib.DescriptionRelease(ptr)
	})
}

// Clone retains the native description and returns an
// owned copy that outlives the snapshot it came from.
func (desc *ServerDescription) Clone() (*ServerDescription, bool) {
	var (
		clone *ServerDescription
		ok    bool
	)

	desc.withLive(func(ptr unsafe.Pointer) {
		desc.lib.DescriptionRetain(ptr)
		clone, ok = ownedDescription(desc.lib, ptr)
	})

	return clone, ok
}

// Same reports whether both descriptions refer to the
// same native object. Equal names do not imply identity.
func (desc *ServerDescription) Same(other *ServerDescription) bool {
	if desc == nil || other == nil {
		return false
	}

	return desc.ptr == other.ptr
}

// Valid reports whether the description can still be read.
func (desc *ServerDescription) Valid() bool {
	return desc.withLive(func(unsafe.Pointer) {})
}

// Close releases an owned description once.
// Closing a borrowed description only ends
// this view of it.
func (desc *ServerDescription) Close() {
	if desc == nil {
		return
	}

	desc.mu.Lock()
	defer desc.mu.Unlock()

	if desc.released {
		return
	}
	desc.released = true

	if desc.owned {
		desc.lib.DescriptionRelease(desc.ptr)
	}
}

// decodeNative treats text that is not
// valid UTF-8 as absent.
func decodeNative(s string, ok bool) (string, bool) {
	if !ok || !utf8.ValidString(s) {
		return "", false
	}

	return s, true
}
