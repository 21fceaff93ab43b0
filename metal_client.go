package texshare

import (
	"unsafe"

	"github.com/pkg/errors"
)

// MetalClient receives frames from one Syphon
// server as Metal textures.
type MetalClient struct {
	endpoint
	lib    syphonNative
	bridge *frameBridge
}

// NewMetalClient connects to the server described by
// desc on device. The callback contract is the same as
// for NewOpenGLClient.
func NewMetalClient(desc *ServerDescription, device MTLDevice, options map[string]string, callback func()) (*MetalClient, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	lib := syphonLib()
	bridge := newFrameBridge(callback)

	var ptr unsafe.Pointer
	if !desc.withLive(func(descPtr unsafe.Pointer) {
		ptr = lib.MetalClientCreate(descPtr, device, bridge.tokenOf())
	}) {
		bridge.close()
		return nil, ErrInvalidDescription
	}

	h, ok := newHandle(ResMetalClient, ptr, lib.MetalClientRelease)
	if !ok {
		bridge.close()
		return nil, errors.Wrap(ErrCreateFailed, "metal client")
	}

	client := &MetalClient{lib: lib, bridge: bridge}
	client.init(h, lib.MetalClientStop)

	return client, nil
}

// ServerDescription returns an owned description of
// the server this client is attached to.
func (client *MetalClient) ServerDescription() (*ServerDescription, bool) {
	var descPtr unsafe.Pointer
	client.h.with(func(ptr unsafe.Pointer) {
		descPtr = client.lib.MetalClientDescription(ptr)
	})

	return ownedDescription(client.lib, descPtr)
}

// IsValid reports whether the connection
// is still usable.
func (client *MetalClient) IsValid() bool {
	valid := false
	client.active(func(ptr unsafe.Pointer) {
		valid = client.lib.MetalClientIsValid(ptr)
	})

	return valid
}

// HasNewFrame reports whether an unseen
// frame is available.
func (client *MetalClient) HasNewFrame() bool {
	has := false
	client.active(func(ptr unsafe.Pointer) {
		has = client.lib.MetalClientHasNewFrame(ptr)
	})

	return has
}

// NewFrameImage returns the current frame.
// Close it before requesting the next one.
func (client *MetalClient) NewFrameImage() (*MetalTexture, error) {
	frame, err := client.acquireFrame(client.lib.MetalClientNewFrameImage)
	if err != nil {
		return nil, err
	}

	return newMetalTexture(client.lib, frame, &client.endpoint), nil
}

// Stop detaches from the server.
func (client *MetalClient) Stop() {
	client.stop()
}

// Close stops the client, releases it and
// then drops its callback.
func (client *MetalClient) Close() {
	if client == nil {
		return
	}

	client.release()
	client.bridge.close()
}
