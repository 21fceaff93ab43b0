package texshare

import (
	"unsafe"

	"github.com/pkg/errors"
)

// MetalServer publishes Metal textures
// to Syphon clients.
type MetalServer struct {
	endpoint
	lib syphonNative
}

// NewMetalServer creates a server on device. The
// device is borrowed and must outlive the server.
func NewMetalServer(name string, device MTLDevice, opts *Options) (*MetalServer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	lib := syphonLib()

	var ptr unsafe.Pointer
	opts.use(func(optsPtr unsafe.Pointer) {
		ptr = lib.MetalServerCreate(cName(name), device, optsPtr)
	})

	h, ok := newHandle(ResMetalServer, ptr, lib.MetalServerRelease)
	if !ok {
		return nil, errors.Wrapf(ErrCreateFailed, "metal server %q", name)
	}

	server := &MetalServer{lib: lib}
	server.init(h, lib.MetalServerStop)

	return server, nil
}

// Device returns the server's Metal device.
func (server *MetalServer) Device() MTLDevice {
	var device MTLDevice
	server.h.with(func(ptr unsafe.Pointer) {
		device = server.lib.MetalServerDevice(ptr)
	})

	return device
}

// Name returns the server's human-readable name.
func (server *MetalServer) Name() (string, bool) {
	var (
		name string
		ok   bool
	)
	server.h.with(func(ptr unsafe.Pointer) {
		name, ok = server.lib.MetalServerName(ptr)
	})

	return decodeNative(name, ok)
}

// SetName renames the server.
func (server *MetalServer) SetName(name string) {
	server.active(func(ptr unsafe.Pointer) {
		server.lib.MetalServerSetName(ptr, cName(name))
	})
}

// HasClients reports whether any client
// is attached right now.
func (server *MetalServer) HasClients() bool {
	has := false
	server.active(func(ptr unsafe.Pointer) {
		has = server.lib.MetalServerHasClients(ptr)
	})

	return has
}

// ServerDescription returns an owned description
// of this server. The caller must close it.
func (server *MetalServer) ServerDescription() (*ServerDescription, bool) {
	var descPtr unsafe.Pointer
	server.h.with(func(ptr unsafe.Pointer) {
		descPtr = server.lib.MetalServerDescription(ptr)
	})

	return ownedDescription(server.lib, descPtr)
}

// PublishFrame encodes a copy of region of texture
// into commandBuffer. The caller still commits the
// command buffer; texshare only forwards the pointers.
func (server *MetalServer) PublishFrame(texture MTLTexture, commandBuffer MTLCommandBuffer, region Rect, flipped bool) bool {
	if texture == nil || commandBuffer == nil {
		return false
	}

	return server.active(func(ptr unsafe.Pointer) {
		server.lib.MetalServerPublishFrame(ptr, texture, commandBuffer, region, flipped)
	})
}

// NewFrameImage returns the most recently published
// frame. Close it before the next call.
func (server *MetalServer) NewFrameImage() (*MetalTexture, error) {
	frame, err := server.acquireFrame(server.lib.MetalServerNewFrameImage)
	if err != nil {
		return nil, err
	}

	return newMetalTexture(server.lib, frame, &server.endpoint), nil
}

// Stop withdraws the server. It is idempotent.
func (server *MetalServer) Stop() {
	server.stop()
}

// Close stops and releases the server.
func (server *MetalServer) Close() {
	if server == nil {
		return
	}

	server.release()
}

// MetalTexture is one frame as an id<MTLTexture>.
type MetalTexture struct {
	h     *handle
	owner *endpoint
}

func newMetalTexture(lib syphonNative, ptr unsafe.Pointer, owner *endpoint) *MetalTexture {
	h, _ := newHandle(ResMetalTexture, ptr, lib.MetalTextureRelease)

	return &MetalTexture{h: h, owner: owner}
}

// Texture returns the raw texture for use with Metal
// code. It is only valid until Close.
func (tex *MetalTexture) Texture() MTLTexture {
	return MTLTexture(tex.h.pointer())
}

// Close releases the frame.
func (tex *MetalTexture) Close() {
	if tex == nil {
		return
	}

	if tex.h.close() && tex.owner != nil {
		tex.owner.frameReleased()
	}
}
