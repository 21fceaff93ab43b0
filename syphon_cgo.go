//go:build darwin && cgo

package texshare

/*
#cgo CFLAGS: -I${SRCDIR}/csrc -DGL_SILENCE_DEPRECATION
#cgo LDFLAGS: -L${SRCDIR}/csrc/lib -lsyphon_glue -F${SRCDIR}/csrc/lib -Wl,-rpath,${SRCDIR}/csrc/lib
#cgo LDFLAGS: -framework Syphon -framework Foundation -framework OpenGL -framework IOSurface
#cgo LDFLAGS: -framework Metal -framework CoreFoundation -framework QuartzCore -framework AppKit
#include <stdlib.h>
#include <stdint.h>
#include "syphon_glue.h"

// Forward declaration - implemented as a Go export below
void goSyphonNewFrame(uintptr_t token);

static void cSyphonNewFrame(void *userdata) {
    goSyphonNewFrame((uintptr_t)userdata);
}

// Takes the token as uintptr_t to avoid Go's unsafe.Pointer conversion warnings
static void *createOpenGLClient(void *desc, CGLContextObj ctx, uintptr_t token) {
    return syphon_opengl_client_create(desc, ctx, NULL,
        token ? cSyphonNewFrame : NULL, (void *)token);
}

static void *createMetalClient(void *desc, void *device, uintptr_t token) {
    return syphon_metal_client_create(desc, device, NULL,
        token ? cSyphonNewFrame : NULL, (void *)token);
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

//export goSyphonNewFrame
func goSyphonNewFrame(token C.uintptr_t) {
	dispatchNewFrame(uintptr(token))
}

type syphonCgo struct {
	keysOnce sync.Once
	keys     map[optionKey]string
}

func newSyphonPlatform() syphonNative {
	return &syphonCgo{}
}

// takeString copies and frees a malloc'd C string.
func takeString(s *C.char) (string, bool) {
	if s == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(s))

	return C.GoString(s), true
}

// optionalString converts s, mapping "" to NULL.
// Free the result with C.free.
func optionalString(s string) *C.char {
	if s == "" {
		return nil
	}

	return C.CString(s)
}

func cglContext(ctx CGLContext) C.CGLContextObj {
	return C.CGLContextObj(unsafe.Pointer(ctx))
}

func (*syphonCgo) DirectoryShared() unsafe.Pointer {
	return C.syphon_server_directory_shared()
}

func (*syphonCgo) DirectoryServersCount(dir unsafe.Pointer) int {
	return int(C.syphon_server_directory_servers_count(dir))
}

func (*syphonCgo) DirectoryServerAt(dir unsafe.Pointer, index int) unsafe.Pointer {
	return C.syphon_server_directory_server_at_index(dir, C.size_t(index))
}

func (*syphonCgo) DirectoryServersMatching(dir unsafe.Pointer, name, appName string) unsafe.Pointer {
	cname := optionalString(name)
	defer C.free(unsafe.Pointer(cname))
	capp := optionalString(appName)
	defer C.free(unsafe.Pointer(capp))

	return C.syphon_server_directory_servers_matching(dir, cname, capp)
}

func (*syphonCgo) MatchCount(match unsafe.Pointer) int {
	return int(C.syphon_server_directory_match_count(match))
}

func (*syphonCgo) MatchAt(match unsafe.Pointer, index int) unsafe.Pointer {
	return C.syphon_server_directory_match_at_index(match, C.size_t(index))
}

func (*syphonCgo) MatchRelease(match unsafe.Pointer) {
	C.syphon_server_directory_match_release(match)
}

func (*syphonCgo) NotificationName(kind notificationKind) (string, bool) {
	switch kind {
	case notificationAnnounce:
		return takeString(C.syphon_notification_name_server_announce())
	case notificationUpdate:
		return takeString(C.syphon_notification_name_server_update())
	case notificationRetire:
		return takeString(C.syphon_notification_name_server_retire())
	default:
		return "", false
	}
}

func (*syphonCgo) DescriptionString(desc unsafe.Pointer, field descriptionField) (string, bool) {
	switch field {
	case fieldUUID:
		return takeString(C.syphon_server_description_copy_uuid(desc))
	case fieldName:
		return takeString(C.syphon_server_description_copy_name(desc))
	case fieldAppName:
		return takeString(C.syphon_server_description_copy_app_name(desc))
	default:
		return "", false
	}
}

func (*syphonCgo) DescriptionRetain(desc unsafe.Pointer) {
	C.syphon_server_description_retain(desc)
}

func (*syphonCgo) DescriptionRelease(desc unsafe.Pointer) {
	C.syphon_server_description_release(desc)
}

func (*syphonCgo) OptionsCreate() unsafe.Pointer {
	return C.syphon_options_create()
}

// optionKey returns the framework's key string,
// fetched once.
func (s *syphonCgo) optionKey(key optionKey) (string, bool) {
	s.keysOnce.Do(func() {
		s.keys = make(map[optionKey]string, 4)
		fetch := map[optionKey]*C.char{
			optionIsPrivate:               C.syphon_server_option_key_is_private(),
			optionAntialiasSampleCount:    C.syphon_server_option_key_antialias_sample_count(),
			optionDepthBufferResolution:   C.syphon_server_option_key_depth_buffer_resolution(),
			optionStencilBufferResolution: C.syphon_server_option_key_stencil_buffer_resolution(),
		}
		for k, cs := range fetch {
			if v, ok := takeString(cs); ok && v != "" {
				s.keys[k] = v
			}
		}
	})

	v, ok := s.keys[key]
	return v, ok
}

func (s *syphonCgo) OptionsSetBool(opts unsafe.Pointer, key optionKey, value bool) bool {
	name, ok := s.optionKey(key)
	if !ok {
		return false
	}

	ckey := C.CString(name)
	defer C.free(unsafe.Pointer(ckey))
	C.syphon_options_set_bool(opts, ckey, C.bool(value))

	return true
}

func (s *syphonCgo) OptionsSetUint(opts unsafe.Pointer, key optionKey, value uint64) bool {
	name, ok := s.optionKey(key)
	if !ok {
		return false
	}

	ckey := C.CString(name)
	defer C.free(unsafe.Pointer(ckey))
	C.syphon_options_set_unsigned_long(opts, ckey, C.ulong(value))

	return true
}

func (*syphonCgo) OptionsRelease(opts unsafe.Pointer) {
	C.syphon_options_release(opts)
}

func (*syphonCgo) OpenGLServerCreate(name string, ctx CGLContext, opts unsafe.Pointer) unsafe.Pointer {
	cname := optionalString(name)
	defer C.free(unsafe.Pointer(cname))

	return C.syphon_opengl_server_create(cname, cglContext(ctx), opts)
}

func (*syphonCgo) OpenGLServerRelease(server unsafe.Pointer) {
	C.syphon_opengl_server_release(server)
}

func (*syphonCgo) OpenGLServerHasClients(server unsafe.Pointer) bool {
	return bool(C.syphon_opengl_server_has_clients(server))
}

func (*syphonCgo) OpenGLServerDescription(server unsafe.Pointer) unsafe.Pointer {
	return C.syphon_opengl_server_server_description(server)
}

func (*syphonCgo) OpenGLServerPublishFrame(server unsafe.Pointer, texID, target uint32, region Rect, textureSize Size, flipped bool) {
	C.syphon_opengl_server_publish_frame(server, C.GLuint(texID), C.GLenum(target),
		C.double(region.X), C.double(region.Y), C.double(region.Width), C.double(region.Height),
		C.double(textureSize.Width), C.double(textureSize.Height), C.bool(flipped))
}

func (*syphonCgo) OpenGLServerBindToDrawFrame(server unsafe.Pointer, size Size) bool {
	return bool(C.syphon_opengl_server_bind_to_draw_frame(server, C.double(size.Width), C.double(size.Height)))
}

func (*syphonCgo) OpenGLServerUnbindAndPublish(server unsafe.Pointer) {
	C.syphon_opengl_server_unbind_and_publish(server)
}

func (*syphonCgo) OpenGLServerStop(server unsafe.Pointer) {
	C.syphon_opengl_server_stop(server)
}

func (*syphonCgo) OpenGLServerContext(server unsafe.Pointer) CGLContext {
	return CGLContext(unsafe.Pointer(C.syphon_opengl_server_context(server)))
}

func (*syphonCgo) OpenGLServerName(server unsafe.Pointer) (string, bool) {
	return takeString(C.syphon_opengl_server_copy_name(server))
}

func (*syphonCgo) OpenGLServerSetName(server unsafe.Pointer, name string) {
	cname := optionalString(name)
	defer C.free(unsafe.Pointer(cname))

	C.syphon_opengl_server_set_name(server, cname)
}

func (*syphonCgo) OpenGLServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer {
	return C.syphon_opengl_server_new_frame_image(server)
}

func (*syphonCgo) OpenGLClientCreate(desc unsafe.Pointer, ctx CGLContext, token uintptr) unsafe.Pointer {
	return C.createOpenGLClient(desc, cglContext(ctx), C.uintptr_t(token))
}

func (*syphonCgo) OpenGLClientRelease(client unsafe.Pointer) {
	C.syphon_opengl_client_release(client)
}

func (*syphonCgo) OpenGLClientIsValid(client unsafe.Pointer) bool {
	return bool(C.syphon_opengl_client_is_valid(client))
}

func (*syphonCgo) OpenGLClientHasNewFrame(client unsafe.Pointer) bool {
	return bool(C.syphon_opengl_client_has_new_frame(client))
}

func (*syphonCgo) OpenGLClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer {
	return C.syphon_opengl_client_new_frame_image(client)
}

func (*syphonCgo) OpenGLClientStop(client unsafe.Pointer) {
	C.syphon_opengl_client_stop(client)
}

func (*syphonCgo) OpenGLClientContext(client unsafe.Pointer) CGLContext {
	return CGLContext(unsafe.Pointer(C.syphon_opengl_client_context(client)))
}

func (*syphonCgo) OpenGLClientDescription(client unsafe.Pointer) unsafe.Pointer {
	return C.syphon_opengl_client_server_description(client)
}

func (*syphonCgo) OpenGLImageRelease(image unsafe.Pointer) {
	C.syphon_opengl_image_release(image)
}

func (*syphonCgo) OpenGLImageTextureName(image unsafe.Pointer) uint32 {
	return uint32(C.syphon_opengl_image_texture_name(image))
}

func (*syphonCgo) OpenGLImageTextureSize(image unsafe.Pointer) Size {
	var w, h C.double
	C.syphon_opengl_image_texture_size(image, &w, &h)

	return Size{Width: float64(w), Height: float64(h)}
}

func (*syphonCgo) MetalServerCreate(name string, device MTLDevice, opts unsafe.Pointer) unsafe.Pointer {
	cname := optionalString(name)
	defer C.free(unsafe.Pointer(cname))

	return C.syphon_metal_server_create(cname, unsafe.Pointer(device), opts)
}

func (*syphonCgo) MetalServerRelease(server unsafe.Pointer) {
	C.syphon_metal_server_release(server)
}

func (*syphonCgo) MetalServerHasClients(server unsafe.Pointer) bool {
	return bool(C.syphon_metal_server_has_clients(server))
}

func (*syphonCgo) MetalServerDescription(server unsafe.Pointer) unsafe.Pointer {
	return C.syphon_metal_server_server_description(server)
}

func (*syphonCgo) MetalServerPublishFrame(server unsafe.Pointer, texture MTLTexture, commandBuffer MTLCommandBuffer, region Rect, flipped bool) {
	C.syphon_metal_server_publish_frame(server, unsafe.Pointer(texture), unsafe.Pointer(commandBuffer),
		C.double(region.X), C.double(region.Y), C.double(region.Width), C.double(region.Height),
		C.bool(flipped))
}

func (*syphonCgo) MetalServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer {
	return C.syphon_metal_server_new_frame_image(server)
}

func (*syphonCgo) MetalServerStop(server unsafe.Pointer) {
	C.syphon_metal_server_stop(server)
}

func (*syphonCgo) MetalServerDevice(server unsafe.Pointer) MTLDevice {
	return MTLDevice(C.syphon_metal_server_device(server))
}

func (*syphonCgo) MetalServerName(server unsafe.Pointer) (string, bool) {
	return takeString(C.syphon_metal_server_copy_name(server))
}

func (*syphonCgo) MetalServerSetName(server unsafe.Pointer, name string) {
	cname := optionalString(name)
	defer C.free(unsafe.Pointer(cname))

	C.syphon_metal_server_set_name(server, cname)
}

func (*syphonCgo) MetalClientCreate(desc unsafe.Pointer, device MTLDevice, token uintptr) unsafe.Pointer {
	return C.createMetalClient(desc, unsafe.Pointer(device), C.uintptr_t(token))
}

func (*syphonCgo) MetalClientRelease(client unsafe.Pointer) {
	C.syphon_metal_client_release(client)
}

func (*syphonCgo) MetalClientIsValid(client unsafe.Pointer) bool {
	return bool(C.syphon_metal_client_is_valid(client))
}

func (*syphonCgo) MetalClientHasNewFrame(client unsafe.Pointer) bool {
	return bool(C.syphon_metal_client_has_new_frame(client))
}

func (*syphonCgo) MetalClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer {
	return C.syphon_metal_client_new_frame_image(client)
}

func (*syphonCgo) MetalClientStop(client unsafe.Pointer) {
	C.syphon_metal_client_stop(client)
}

func (*syphonCgo) MetalClientDescription(client unsafe.Pointer) unsafe.Pointer {
	return C.syphon_metal_client_server_description(client)
}

func (*syphonCgo) MetalTextureRelease(texture unsafe.Pointer) {
	C.syphon_metal_texture_release(texture)
}

func (*syphonCgo) CGLCreateHeadlessContext() CGLContext {
	return CGLContext(unsafe.Pointer(C.syphon_cgl_create_headless_context()))
}

func (*syphonCgo) CGLDestroyContext(ctx CGLContext) {
	C.syphon_cgl_destroy_context(cglContext(ctx))
}

func (*syphonCgo) CGLMakeCurrent(ctx CGLContext) {
	C.syphon_cgl_make_current(cglContext(ctx))
}

func (*syphonCgo) GLCreateTextureRectangleRGBA8(width, height int, rgba []byte) uint32 {
	if len(rgba) == 0 {
		return 0
	}

	return uint32(C.syphon_gl_create_texture_rectangle_rgba8(C.size_t(width), C.size_t(height),
		(*C.uchar)(unsafe.Pointer(&rgba[0]))))
}

func (*syphonCgo) GLReadTextureRectangleRGBA8(texID uint32, width, height int, out []byte) {
	if len(out) == 0 {
		return
	}

	C.syphon_gl_read_texture_rectangle_rgba8(C.GLuint(texID), C.size_t(width), C.size_t(height),
		(*C.uchar)(unsafe.Pointer(&out[0])))
}

func (*syphonCgo) GLDeleteTexture(texID uint32) {
	C.syphon_gl_delete_texture(C.GLuint(texID))
}
