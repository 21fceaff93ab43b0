//go:build windows && cgo

package texshare

/*
#cgo CFLAGS: -I${SRCDIR}/csrc
#cgo LDFLAGS: -L${SRCDIR}/csrc/lib -lspout_glue -lSpoutLibrary
#include <stdlib.h>
#include "spout_glue.h"
*/
import "C"

import (
	"bytes"
	"unsafe"
)

type spoutCgo struct{}

func newSpoutPlatform() spoutNative {
	return spoutCgo{}
}

// takeSpoutString copies and frees a glue-owned string.
func takeSpoutString(s *C.char) (string, bool) {
	if s == nil {
		return "", false
	}
	defer C.spout_string_free(s)

	return C.GoString(s), true
}

// spoutString converts s, mapping "" to NULL.
// Free the result with C.free.
func spoutString(s string) *C.char {
	if s == "" {
		return nil
	}

	return C.CString(s)
}

// fillName runs a query that writes a NUL-terminated
// name into a fixed buffer.
func fillName(query func(buf *C.char, size C.int) C.bool) (string, bool) {
	buf := make([]byte, nameBufferSize)
	if !bool(query((*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf)))) {
		return "", false
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}

	return string(buf), true
}

func handleOf(h unsafe.Pointer) C.spout_handle {
	return C.spout_handle(h)
}

func (spoutCgo) Create() unsafe.Pointer {
	return unsafe.Pointer(C.spout_create())
}

func (spoutCgo) Destroy(h unsafe.Pointer) {
	C.spout_destroy(handleOf(h))
}

func (spoutCgo) SenderSetName(h unsafe.Pointer, name string) {
	cname := spoutString(name)
	defer C.free(unsafe.Pointer(cname))

	C.spout_sender_set_name(handleOf(h), cname)
}

func (spoutCgo) SenderSetFormat(h unsafe.Pointer, dxgiFormat uint32) {
	C.spout_sender_set_format(handleOf(h), C.uint(dxgiFormat))
}

func (spoutCgo) SenderSendTexture(h unsafe.Pointer, texID, target, width, height uint32, invert bool) bool {
	return bool(C.spout_sender_send_texture(handleOf(h), C.uint(texID), C.uint(target),
		C.uint(width), C.uint(height), C.bool(invert)))
}

func (spoutCgo) SenderSendFBO(h unsafe.Pointer, fboID, width, height uint32, invert bool) bool {
	return bool(C.spout_sender_send_fbo(handleOf(h), C.uint(fboID), C.uint(width), C.uint(height), C.bool(invert)))
}

func (spoutCgo) SenderSendImage(h unsafe.Pointer, pixels []byte, width, height, glFormat uint32, invert bool) bool {
	if len(pixels) == 0 {
		return false
	}

	return bool(C.spout_sender_send_image(handleOf(h), (*C.uchar)(unsafe.Pointer(&pixels[0])),
		C.uint(width), C.uint(height), C.uint(glFormat), C.bool(invert)))
}

func (spoutCgo) SenderRelease(h unsafe.Pointer) {
	C.spout_sender_release(handleOf(h))
}

func (spoutCgo) SenderIsInitialized(h unsafe.Pointer) bool {
	return bool(C.spout_sender_is_initialized(handleOf(h)))
}

func (spoutCgo) SenderWidth(h unsafe.Pointer) uint32 {
	return uint32(C.spout_sender_get_width(handleOf(h)))
}

func (spoutCgo) SenderHeight(h unsafe.Pointer) uint32 {
	return uint32(C.spout_sender_get_height(handleOf(h)))
}

func (spoutCgo) SenderName(h unsafe.Pointer) (string, bool) {
	return takeSpoutString(C.spout_sender_get_name(handleOf(h)))
}

func (spoutCgo) SenderFormat(h unsafe.Pointer) uint32 {
	return uint32(C.spout_sender_get_format(handleOf(h)))
}

func (spoutCgo) SenderFPS(h unsafe.Pointer) float64 {
	return float64(C.spout_sender_get_fps(handleOf(h)))
}

func (spoutCgo) SenderFrame(h unsafe.Pointer) int64 {
	return int64(C.spout_sender_get_frame(handleOf(h)))
}

func (spoutCgo) ReceiverSetName(h unsafe.Pointer, senderName string) {
	cname := spoutString(senderName)
	defer C.free(unsafe.Pointer(cname))

	C.spout_receiver_set_name(handleOf(h), cname)
}

func (spoutCgo) ReceiverReceiveTexture(h unsafe.Pointer, texID, target uint32, invert bool) bool {
	return bool(C.spout_receiver_receive_texture(handleOf(h), C.uint(texID), C.uint(target), C.bool(invert)))
}

func (spoutCgo) ReceiverReceiveImage(h unsafe.Pointer, pixels []byte, glFormat uint32, invert bool) bool {
	if len(pixels) == 0 {
		return false
	}

	return bool(C.spout_receiver_receive_image(handleOf(h), (*C.uchar)(unsafe.Pointer(&pixels[0])),
		C.uint(glFormat), C.bool(invert)))
}

func (spoutCgo) ReceiverRelease(h unsafe.Pointer) {
	C.spout_receiver_release(handleOf(h))
}

func (spoutCgo) ReceiverSenderName(h unsafe.Pointer) (string, bool) {
	return fillName(func(buf *C.char, size C.int) C.bool {
		return C.spout_receiver_get_sender_name(handleOf(h), buf, size)
	})
}

func (spoutCgo) ReceiverIsFrameNew(h unsafe.Pointer) bool {
	return bool(C.spout_receiver_is_frame_new(handleOf(h)))
}

func (spoutCgo) ReceiverIsUpdated(h unsafe.Pointer) bool {
	return bool(C.spout_receiver_is_updated(handleOf(h)))
}

func (spoutCgo) ReceiverIsConnected(h unsafe.Pointer) bool {
	return bool(C.spout_receiver_is_connected(handleOf(h)))
}

func (spoutCgo) ReceiverSenderWidth(h unsafe.Pointer) uint32 {
	return uint32(C.spout_receiver_get_sender_width(handleOf(h)))
}

func (spoutCgo) ReceiverSenderHeight(h unsafe.Pointer) uint32 {
	return uint32(C.spout_receiver_get_sender_height(handleOf(h)))
}

func (spoutCgo) ReceiverSenderFormat(h unsafe.Pointer) uint32 {
	return uint32(C.spout_receiver_get_sender_format(handleOf(h)))
}

func (spoutCgo) ReceiverSenderFPS(h unsafe.Pointer) float64 {
	return float64(C.spout_receiver_get_sender_fps(handleOf(h)))
}

func (spoutCgo) ReceiverSenderFrame(h unsafe.Pointer) int64 {
	return int64(C.spout_receiver_get_sender_frame(handleOf(h)))
}

func (spoutCgo) BindSharedTexture(h unsafe.Pointer) bool {
	return bool(C.spout_bind_shared_texture(handleOf(h)))
}

func (spoutCgo) UnbindSharedTexture(h unsafe.Pointer) bool {
	return bool(C.spout_unbind_shared_texture(handleOf(h)))
}

func (spoutCgo) SharedTextureID(h unsafe.Pointer) uint32 {
	return uint32(C.spout_get_shared_texture_id(handleOf(h)))
}

func (spoutCgo) SenderCount(h unsafe.Pointer) int {
	return int(C.spout_get_sender_count(handleOf(h)))
}

func (spoutCgo) SenderNameAt(h unsafe.Pointer, index int) (string, bool) {
	return fillName(func(buf *C.char, size C.int) C.bool {
		return C.spout_get_sender_name(handleOf(h), C.int(index), buf, size)
	})
}

func (spoutCgo) FindSenderName(h unsafe.Pointer, name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	return bool(C.spout_find_sender_name(handleOf(h), cname))
}

func (spoutCgo) ActiveSender(h unsafe.Pointer) (string, bool) {
	return fillName(func(buf *C.char, size C.int) C.bool {
		return C.spout_get_active_sender(handleOf(h), buf, size)
	})
}

func (spoutCgo) SetActiveSender(h unsafe.Pointer, name string) bool {
	cname := spoutString(name)
	defer C.free(unsafe.Pointer(cname))

	return bool(C.spout_set_active_sender(handleOf(h), cname))
}

func (spoutCgo) SenderInfo(h unsafe.Pointer, name string) (SenderInfo, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var (
		width, height, format C.uint
		share                 unsafe.Pointer
	)
	if !bool(C.spout_get_sender_info(handleOf(h), cname, &width, &height, &share, &format)) {
		return SenderInfo{}, false
	}

	return SenderInfo{
		Width:       uint32(width),
		Height:      uint32(height),
		ShareHandle: uintptr(share),
		Format:      uint32(format),
	}, true
}

func (spoutCgo) SetFrameSync(h unsafe.Pointer, name string) {
	cname := spoutString(name)
	defer C.free(unsafe.Pointer(cname))

	C.spout_set_frame_sync(handleOf(h), cname)
}

func (spoutCgo) WaitFrameSync(h unsafe.Pointer, name string, timeoutMS uint32) bool {
	cname := spoutString(name)
	defer C.free(unsafe.Pointer(cname))

	return bool(C.spout_wait_frame_sync(handleOf(h), cname, C.uint(timeoutMS)))
}

func (spoutCgo) EnableFrameSync(h unsafe.Pointer, enabled bool) {
	C.spout_enable_frame_sync(handleOf(h), C.bool(enabled))
}

func (spoutCgo) CloseFrameSync(h unsafe.Pointer) {
	C.spout_close_frame_sync(handleOf(h))
}

func (spoutCgo) IsFrameSyncEnabled(h unsafe.Pointer) bool {
	return bool(C.spout_is_frame_sync_enabled(handleOf(h)))
}

func (spoutCgo) WriteMemoryBuffer(h unsafe.Pointer, name string, data []byte) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var ptr *C.char
	if len(data) > 0 {
		ptr = (*C.char)(unsafe.Pointer(&data[0]))
	}

	return bool(C.spout_write_memory_buffer(handleOf(h), cname, ptr, C.int(len(data))))
}

func (spoutCgo) ReadMemoryBuffer(h unsafe.Pointer, name string, out []byte) int {
	if len(out) == 0 {
		return 0
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	return int(C.spout_read_memory_buffer(handleOf(h), cname,
		(*C.char)(unsafe.Pointer(&out[0])), C.int(len(out))))
}

func (spoutCgo) MaxSenders(h unsafe.Pointer) int {
	return int(C.spout_get_max_senders(handleOf(h)))
}

func (spoutCgo) BufferMode(h unsafe.Pointer) bool {
	return bool(C.spout_get_buffer_mode(handleOf(h)))
}

func (spoutCgo) SetBufferMode(h unsafe.Pointer, active bool) {
	C.spout_set_buffer_mode(handleOf(h), C.bool(active))
}

func (spoutCgo) Buffers(h unsafe.Pointer) int {
	return int(C.spout_get_buffers(handleOf(h)))
}

func (spoutCgo) SetBuffers(h unsafe.Pointer, buffers int) {
	C.spout_set_buffers(handleOf(h), C.int(buffers))
}

func (spoutCgo) CPUMode(h unsafe.Pointer) bool {
	return bool(C.spout_get_cpu_mode(handleOf(h)))
}

func (spoutCgo) SetCPUMode(h unsafe.Pointer, cpuMode bool) bool {
	return bool(C.spout_set_cpu_mode(handleOf(h), C.bool(cpuMode)))
}
