package texshare

import (
	"unsafe"

	"github.com/pkg/errors"
)

// OpenGLClient receives frames from one Syphon
// server as OpenGL textures.
type OpenGLClient struct {
	endpoint
	lib    syphonNative
	bridge *frameBridge
}

// NewOpenGLClient connects to the server described by
// desc, drawing into ctx. options is accepted for API
// symmetry and currently unused by Syphon.
//
// callback may be nil. Otherwise it is called, on a
// goroutine owned by the client, whenever a new frame
// may be available: check HasNewFrame rather than
// counting calls. The callback may close its own
// client; that Close does not wait for it to return.
func NewOpenGLClient(desc *ServerDescription, ctx CGLContext, options map[string]string, callback func()) (*OpenGLClient, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	lib := syphonLib()
	bridge := newFrameBridge(callback)

	var ptr unsafe.Pointer
	if !desc.withLive(func(descPtr unsafe.Pointer) {
		ptr = lib.OpenGLClientCreate(descPtr, ctx, bridge.tokenOf())
	}) {
		bridge.close()
		return nil, ErrInvalidDescription
	}

	h, ok := newHandle(ResOpenGLClient, ptr, lib.OpenGLClientRelease)
	if !ok {
		bridge.close()
		return nil, errors.Wrap(ErrCreateFailed, "opengl client")
	}

	client := &OpenGLClient{lib: lib, bridge: bridge}
	client.init(h, lib.OpenGLClientStop)

	return client, nil
}

// Context returns the client's CGL context.
func (client *OpenGLClient) Context() CGLContext {
	var ctx CGLContext
	client.h.with(func(ptr unsafe.Pointer) {
		ctx = client.lib.OpenGLClientContext(ptr)
	})

	return ctx
}

// ServerDescription returns an owned description of
// the server this client is attached to.
func (client *OpenGLClient) ServerDescription() (*ServerDescription, bool) {
	var descPtr unsafe.Pointer
	client.h.with(func(ptr unsafe.Pointer) {
		descPtr = client.lib.OpenGLClientDescription(ptr)
	})

	return ownedDescription(client.lib, descPtr)
}

// IsValid reports whether the connection to the
// server is still usable.
func (client *OpenGLClient) IsValid() bool {
	valid := false
	client.active(func(ptr unsafe.Pointer) {
		valid = client.lib.OpenGLClientIsValid(ptr)
	})

	return valid
}

// HasNewFrame reports whether a frame newer than
// the last one fetched is available.
func (client *OpenGLClient) HasNewFrame() bool {
	has := false
	client.active(func(ptr unsafe.Pointer) {
		has = client.lib.OpenGLClientHasNewFrame(ptr)
	})

	return has
}

// NewFrameImage returns the current frame.
// Close it before requesting the next one.
func (client *OpenGLClient) NewFrameImage() (*OpenGLImage, error) {
	frame, err := client.acquireFrame(client.lib.OpenGLClientNewFrameImage)
	if err != nil {
		return nil, err
	}

	return newOpenGLImage(client.lib, frame, &client.endpoint), nil
}

// Stop detaches from the server. No callback
// is delivered after Close returns.
func (client *OpenGLClient) Stop() {
	client.stop()
}

// Close stops the client, releases it and then
// drops its callback.
func (client *OpenGLClient) Close() {
	if client == nil {
		return
	}

	client.release()
	client.bridge.close()
}
