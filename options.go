package texshare

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Options configures server creation.
//
// The options are copied by the server constructor,
// so Close them whether or not creation succeeded.
type Options struct {
	lib syphonNative
	h   *handle
}

// NewOptions creates an empty option set.
func NewOptions() (*Options, error) {
	lib := syphonLib()
	ptr := lib.OptionsCreate()

	h, ok := newHandle(ResOptions, ptr, lib.OptionsRelease)
	if !ok {
		return nil, errors.Wrap(ErrUnavailable, "syphon options")
	}

	return &Options{lib: lib, h: h}, nil
}

// SetPrivate hides the server from the directory;
// clients then need its description out of band.
func (opts *Options) SetPrivate(private bool) bool {
	set := false
	opts.h.with(func(ptr unsafe.Pointer) {
		set = opts.lib.OptionsSetBool(ptr, optionIsPrivate, private)
	})

	return set
}

// SetAntialiasSampleCount sets the MSAA sample count
// used by BindToDrawFrame. Metal servers ignore it.
func (opts *Options) SetAntialiasSampleCount(count uint32) bool {
	return opts.setUint(optionAntialiasSampleCount, count)
}

// SetDepthBufferResolution sets the depth bits (16, 24
// or 32) of the OpenGL draw frame.
func (opts *Options) SetDepthBufferResolution(bits uint32) bool {
	return opts.setUint(optionDepthBufferResolution, bits)
}

// SetStencilBufferResolution sets the stencil bits
// (1, 4, 8 or 16) of the OpenGL draw frame.
func (opts *Options) SetStencilBufferResolution(bits uint32) bool {
	return opts.setUint(optionStencilBufferResolution, bits)
}

func (opts *Options) setUint(key optionKey, value uint32) bool {
	set := false
	opts.h.with(func(ptr unsafe.Pointer) {
		set = opts.lib.OptionsSetUint(ptr, key, uint64(value))
	})

	return set
}

// use runs fn with the native options, or with nil
// when opts is nil or already closed.
func (opts *Options) use(fn func(ptr unsafe.Pointer)) {
	if opts == nil || !opts.h.with(fn) {
		fn(nil)
	}
}

// Close releases the options.
func (opts *Options) Close() {
	if opts == nil {
		return
	}

	opts.h.close()
}
