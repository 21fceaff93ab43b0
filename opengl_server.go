package texshare

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// OpenGLServer publishes OpenGL textures
// to Syphon clients in other processes.
//
// The CGL context is borrowed: it must outlive the
// server and be current on the calling thread for
// every publish, bind and frame call.
type OpenGLServer struct {
	endpoint
	lib     syphonNative
	drawing atomic.Bool
}

// NewOpenGLServer creates a server named name (empty
// for an unnamed server) drawing with ctx. opts may be
// nil; the caller closes it afterwards either way.
func NewOpenGLServer(name string, ctx CGLContext, opts *Options) (*OpenGLServer, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	lib := syphonLib()

	var ptr unsafe.Pointer
	opts.use(func(optsPtr unsafe.Pointer) {
		ptr = lib.OpenGLServerCreate(cName(name), ctx, optsPtr)
	})

	h, ok := newHandle(ResOpenGLServer, ptr, lib.OpenGLServerRelease)
	if !ok {
		return nil, errors.Wrapf(ErrCreateFailed, "opengl server %q", name)
	}

	server := &OpenGLServer{lib: lib}
	server.init(h, lib.OpenGLServerStop)

	return server, nil
}

// Context returns the CGL context the server
// draws with, nil once released.
func (server *OpenGLServer) Context() CGLContext {
	var ctx CGLContext
	server.h.with(func(ptr unsafe.Pointer) {
		ctx = server.lib.OpenGLServerContext(ptr)
	})

	return ctx
}

// Name returns the server's human-readable name.
func (server *OpenGLServer) Name() (string, bool) {
	var (
		name string
		ok   bool
	)
	server.h.with(func(ptr unsafe.Pointer) {
		name, ok = server.lib.OpenGLServerName(ptr)
	})

	return decodeNative(name, ok)
}

// SetName renames the server. An
// empty name clears it.
func (server *OpenGLServer) SetName(name string) {
	server.active(func(ptr unsafe.Pointer) {
		server.lib.OpenGLServerSetName(ptr, cName(name))
	})
}

// HasClients reports whether any client
// is attached right now.
func (server *OpenGLServer) HasClients() bool {
	has := false
	server.active(func(ptr unsafe.Pointer) {
		has = server.lib.OpenGLServerHasClients(ptr)
	})

	return has
}

// ServerDescription returns an owned description
// of this server. The caller must close it.
func (server *OpenGLServer) ServerDescription() (*ServerDescription, bool) {
	var descPtr unsafe.Pointer
	server.h.with(func(ptr unsafe.Pointer) {
		descPtr = server.lib.OpenGLServerDescription(ptr)
	})

	return ownedDescription(server.lib, descPtr)
}

// PublishFrame publishes region of the texture texID
// (bound to target, textureSize in pixels). It reports
// false when the server is stopped or a bound draw frame
// is pending.
func (server *OpenGLServer) PublishFrame(texID, target uint32, region Rect, textureSize Size, flipped bool) bool {
	if server.drawing.Load() {
		Logger().Warn("publish rejected while a draw frame is bound")
		return false
	}

	return server.active(func(ptr unsafe.Pointer) {
		server.lib.OpenGLServerPublishFrame(ptr, texID, target, region, textureSize, flipped)
	})
}

// BindToDrawFrame binds the server's own framebuffer
// of the given size for drawing. Pair every successful
// call with UnbindAndPublish.
func (server *OpenGLServer) BindToDrawFrame(size Size) bool {
	if !server.drawing.CompareAndSwap(false, true) {
		return false
	}

	bound := false
	server.active(func(ptr unsafe.Pointer) {
		bound = server.lib.OpenGLServerBindToDrawFrame(ptr, size)
	})
	if !bound {
		server.drawing.Store(false)
	}

	return bound
}

// UnbindAndPublish ends the bound draw
// frame and publishes it.
func (server *OpenGLServer) UnbindAndPublish() bool {
	return server.endDrawFrame()
}

// endDrawFrame unbinds a pending draw frame. The native
// unbind runs even after Stop so the caller's context
// is never left bound to a released framebuffer.
func (server *OpenGLServer) endDrawFrame() bool {
	if !server.drawing.CompareAndSwap(true, false) {
		return false
	}

	return server.h.with(func(ptr unsafe.Pointer) {
		server.lib.OpenGLServerUnbindAndPublish(ptr)
	})
}

// NewFrameImage returns the most recently published
// frame (loopback). Close it before the next call.
func (server *OpenGLServer) NewFrameImage() (*OpenGLImage, error) {
	frame, err := server.acquireFrame(server.lib.OpenGLServerNewFrameImage)
	if err != nil {
		return nil, err
	}

	return newOpenGLImage(server.lib, frame, &server.endpoint), nil
}

// Stop withdraws the server from the directory,
// ending a bound draw frame first. It is idempotent;
// Close calls it as well.
func (server *OpenGLServer) Stop() {
	if server.endDrawFrame() {
		Logger().Warn("opengl server stopped with a bound draw frame")
	}
	server.stop()
}

// Close stops the server and releases it.
// The CGL context is left untouched.
func (server *OpenGLServer) Close() {
	if server == nil {
		return
	}

	if server.endDrawFrame() {
		Logger().Warn("opengl server closed with a bound draw frame",
			zap.Bool("stopped", server.isStopped()))
	}
	server.release()
}

// OpenGLImage is one frame handed out by a server
// or client. Draw with it and close it promptly.
type OpenGLImage struct {
	lib   syphonNative
	h     *handle
	owner *endpoint
}

func newOpenGLImage(lib syphonNative, ptr unsafe.Pointer, owner *endpoint) *OpenGLImage {
	h, _ := newHandle(ResOpenGLImage, ptr, lib.OpenGLImageRelease)

	return &OpenGLImage{lib: lib, h: h, owner: owner}
}

// TextureName returns the GL texture name (a
// GL_TEXTURE_RECTANGLE texture), 0 once closed.
func (img *OpenGLImage) TextureName() uint32 {
	var name uint32
	img.h.with(func(ptr unsafe.Pointer) {
		name = img.lib.OpenGLImageTextureName(ptr)
	})

	return name
}

// TextureSize returns the texture size in pixels.
func (img *OpenGLImage) TextureSize() Size {
	var size Size
	img.h.with(func(ptr unsafe.Pointer) {
		size = img.lib.OpenGLImageTextureSize(ptr)
	})

	return size
}

// Close releases the frame.
func (img *OpenGLImage) Close() {
	if img == nil {
		return
	}

	if img.h.close() && img.owner != nil {
		img.owner.frameReleased()
	}
}
