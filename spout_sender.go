package texshare

import (
	"unsafe"

	"github.com/gogpu/gputypes"
	"go.uber.org/zap"
)

// SpoutSender shares textures with Spout receivers.
// It cannot receive; use a SpoutReceiver for that.
type SpoutSender struct {
	*spoutCore
}

// NewSpoutSender creates a sender. The name may be
// empty and set later with SetName, but must be set
// before the first send.
func NewSpoutSender(name string) (*SpoutSender, error) {
	core, err := newSpoutCore("sender", func(lib spoutNative) func(ptr unsafe.Pointer) {
		return lib.SenderRelease
	})
	if err != nil {
		return nil, err
	}

	sender := &SpoutSender{spoutCore: core}
	if name != "" {
		sender.SetName(name)
	}

	return sender, nil
}

// SetName sets the name receivers see.
func (sender *SpoutSender) SetName(name string) {
	sender.h.with(func(ptr unsafe.Pointer) {
		sender.lib.SenderSetName(ptr, cName(name))
	})
}

// SetFormat sets the DXGI format of the shared texture.
func (sender *SpoutSender) SetFormat(dxgiFormat uint32) {
	sender.h.with(func(ptr unsafe.Pointer) {
		sender.lib.SenderSetFormat(ptr, dxgiFormat)
	})
}

// SetTextureFormat sets the shared texture format from
// a WebGPU format. It reports false for formats DirectX
// cannot share.
func (sender *SpoutSender) SetTextureFormat(format gputypes.TextureFormat) bool {
	dxgi, ok := DXGIFormat(format)
	if !ok {
		return false
	}

	return sender.h.with(func(ptr unsafe.Pointer) {
		sender.lib.SenderSetFormat(ptr, dxgi)
	})
}

// SendTexture shares an OpenGL texture.
func (sender *SpoutSender) SendTexture(texID, target, width, height uint32, invert bool) bool {
	sent := false
	sender.h.with(func(ptr unsafe.Pointer) {
		sent = sender.lib.SenderSendTexture(ptr, texID, target, width, height, invert)
	})

	return sent
}

// SendFBO shares the framebuffer fboID, which the
// caller must have bound. Use 0 for the default
// framebuffer.
func (sender *SpoutSender) SendFBO(fboID, width, height uint32, invert bool) bool {
	sent := false
	sender.h.with(func(ptr unsafe.Pointer) {
		sent = sender.lib.SenderSendFBO(ptr, fboID, width, height, invert)
	})

	return sent
}

// SendImage shares a pixel buffer. pixels must hold at
// least width*height pixels of glFormat; shorter buffers
// and unknown formats are rejected without a native call.
func (sender *SpoutSender) SendImage(pixels []byte, width, height, glFormat uint32, invert bool) bool {
	bpp := BytesPerPixel(glFormat)
	if bpp == 0 {
		Logger().Warn("send rejected: unknown pixel format",
			zap.Uint32("format", glFormat))
		return false
	}
	if width == 0 || height == 0 || !pixelBufferFits(len(pixels), int(width), int(height), bpp) {
		return false
	}

	sent := false
	sender.h.with(func(ptr unsafe.Pointer) {
		sent = sender.lib.SenderSendImage(ptr, pixels, width, height, glFormat, invert)
	})

	return sent
}

// IsInitialized reports whether the first
// send has created the shared texture.
func (sender *SpoutSender) IsInitialized() bool {
	ok := false
	sender.h.with(func(ptr unsafe.Pointer) {
		ok = sender.lib.SenderIsInitialized(ptr)
	})

	return ok
}

// Width returns the shared texture width.
func (sender *SpoutSender) Width() uint32 {
	var width uint32
	sender.h.with(func(ptr unsafe.Pointer) {
		width = sender.lib.SenderWidth(ptr)
	})

	return width
}

// Height returns the shared texture height.
func (sender *SpoutSender) Height() uint32 {
	var height uint32
	sender.h.with(func(ptr unsafe.Pointer) {
		height = sender.lib.SenderHeight(ptr)
	})

	return height
}

// Name returns the sender name.
func (sender *SpoutSender) Name() (string, bool) {
	var (
		name string
		ok   bool
	)
	sender.h.with(func(ptr unsafe.Pointer) {
		name, ok = sender.lib.SenderName(ptr)
	})

	return decodeNative(name, ok)
}

// Format returns the shared DXGI format.
func (sender *SpoutSender) Format() uint32 {
	var format uint32
	sender.h.with(func(ptr unsafe.Pointer) {
		format = sender.lib.SenderFormat(ptr)
	})

	return format
}

// FPS returns the measured send rate.
func (sender *SpoutSender) FPS() float64 {
	var fps float64
	sender.h.with(func(ptr unsafe.Pointer) {
		fps = sender.lib.SenderFPS(ptr)
	})

	return fps
}

// Frame returns the sent frame counter.
func (sender *SpoutSender) Frame() int64 {
	var frame int64
	sender.h.with(func(ptr unsafe.Pointer) {
		frame = sender.lib.SenderFrame(ptr)
	})

	return frame
}

// Close releases the sender and destroys
// the Spout object.
func (sender *SpoutSender) Close() {
	if sender == nil || sender.spoutCore == nil {
		return
	}

	sender.close()
}
