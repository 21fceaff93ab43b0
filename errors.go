package texshare

import "github.com/pkg/errors"

var (
	// ErrUnavailable is returned when the
	// native frame-sharing framework is not
	// present on this platform or refused
	// to hand out its shared object.
	ErrUnavailable = errors.New("frame sharing unavailable")
	// ErrCreateFailed is returned when the
	// native constructor returned no object.
	ErrCreateFailed = errors.New("native object creation failed")
	// ErrNilContext is returned when a nil
	// CGL context is passed to a constructor.
	ErrNilContext = errors.New("nil CGL context")
	// ErrNilDevice is returned when a nil
	// Metal device is passed to a constructor.
	ErrNilDevice = errors.New("nil Metal device")
	// ErrInvalidDescription is returned when
	// a server description is nil, closed
	// or no longer readable.
	ErrInvalidDescription = errors.New("invalid server description")
	// ErrClosed is returned by operations
	// on an object that was already stopped
	// or released.
	ErrClosed = errors.New("object closed")
	// ErrFrameOutstanding is returned when a
	// new frame is requested while the previous
	// one has not been closed yet.
	ErrFrameOutstanding = errors.New("previous frame not released")
	// ErrNoFrame is returned when the native
	// side has no frame to hand out.
	ErrNoFrame = errors.New("no frame available")
)
