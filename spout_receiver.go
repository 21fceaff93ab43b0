package texshare

import (
	"unsafe"

	"go.uber.org/zap"
)

// SpoutReceiver receives textures from a Spout sender.
// Call IsUpdated or IsFrameNew before each receive.
type SpoutReceiver struct {
	*spoutCore
}

// NewSpoutReceiver creates a receiver connecting to
// senderName, or to the active sender when empty.
func NewSpoutReceiver(senderName string) (*SpoutReceiver, error) {
	core, err := newSpoutCore("receiver", func(lib spoutNative) func(ptr unsafe.Pointer) {
		return lib.ReceiverRelease
	})
	if err != nil {
		return nil, err
	}

	receiver := &SpoutReceiver{spoutCore: core}
	if senderName != "" {
		receiver.SetSenderName(senderName)
	}

	return receiver, nil
}

// SetSenderName selects the sender to receive from.
// Empty selects the active sender.
func (receiver *SpoutReceiver) SetSenderName(name string) {
	receiver.h.with(func(ptr unsafe.Pointer) {
		receiver.lib.ReceiverSetName(ptr, cName(name))
	})
}

// ReceiveTexture copies the shared texture into
// the OpenGL texture texID.
func (receiver *SpoutReceiver) ReceiveTexture(texID, target uint32, invert bool) bool {
	received := false
	receiver.h.with(func(ptr unsafe.Pointer) {
		received = receiver.lib.ReceiverReceiveTexture(ptr, texID, target, invert)
	})

	return received
}

// ReceiveImage copies the shared texture into pixels.
// pixels must hold SenderWidth*SenderHeight pixels of
// glFormat; shorter buffers and unknown formats are
// rejected without a native call. After a sender resize
// IsUpdated turns true and the caller must reallocate.
func (receiver *SpoutReceiver) ReceiveImage(pixels []byte, glFormat uint32, invert bool) bool {
	bpp := BytesPerPixel(glFormat)
	if bpp == 0 {
		Logger().Warn("receive rejected: unknown pixel format",
			zap.Uint32("format", glFormat))
		return false
	}

	received := false
	receiver.h.with(func(ptr unsafe.Pointer) {
		width := receiver.lib.ReceiverSenderWidth(ptr)
		height := receiver.lib.ReceiverSenderHeight(ptr)
		if !pixelBufferFits(len(pixels), int(width), int(height), bpp) {
			return
		}
		received = receiver.lib.ReceiverReceiveImage(ptr, pixels, glFormat, invert)
	})

	return received
}

// SenderName returns the name of the sender
// being received from.
func (receiver *SpoutReceiver) SenderName() (string, bool) {
	var (
		name string
		ok   bool
	)
	receiver.h.with(func(ptr unsafe.Pointer) {
		name, ok = receiver.lib.ReceiverSenderName(ptr)
	})

	return decodeNative(name, ok)
}

// IsFrameNew reports whether the sender produced
// a frame since the last receive.
func (receiver *SpoutReceiver) IsFrameNew() bool {
	return receiver.query(receiver.lib.ReceiverIsFrameNew)
}

// IsUpdated reports whether the sender changed size
// or connection; reallocate buffers when true.
func (receiver *SpoutReceiver) IsUpdated() bool {
	return receiver.query(receiver.lib.ReceiverIsUpdated)
}

// IsConnected reports whether a sender is connected.
func (receiver *SpoutReceiver) IsConnected() bool {
	return receiver.query(receiver.lib.ReceiverIsConnected)
}

func (receiver *SpoutReceiver) query(fn func(ptr unsafe.Pointer) bool) bool {
	result := false
	receiver.h.with(func(ptr unsafe.Pointer) {
		result = fn(ptr)
	})

	return result
}

// SenderWidth returns the connected sender's width.
func (receiver *SpoutReceiver) SenderWidth() uint32 {
	var width uint32
	receiver.h.with(func(ptr unsafe.Pointer) {
		width = receiver.lib.ReceiverSenderWidth(ptr)
	})

	return width
}

// SenderHeight returns the connected sender's height.
func (receiver *SpoutReceiver) SenderHeight() uint32 {
	var height uint32
	receiver.h.with(func(ptr unsafe.Pointer) {
		height = receiver.lib.ReceiverSenderHeight(ptr)
	})

	return height
}

// SenderFormat returns the sender's DXGI format.
func (receiver *SpoutReceiver) SenderFormat() uint32 {
	var format uint32
	receiver.h.with(func(ptr unsafe.Pointer) {
		format = receiver.lib.ReceiverSenderFormat(ptr)
	})

	return format
}

// SenderFPS returns the sender's frame rate.
func (receiver *SpoutReceiver) SenderFPS() float64 {
	var fps float64
	receiver.h.with(func(ptr unsafe.Pointer) {
		fps = receiver.lib.ReceiverSenderFPS(ptr)
	})

	return fps
}

// SenderFrame returns the sender's frame counter.
func (receiver *SpoutReceiver) SenderFrame() int64 {
	var frame int64
	receiver.h.with(func(ptr unsafe.Pointer) {
		frame = receiver.lib.ReceiverSenderFrame(ptr)
	})

	return frame
}

// BindSharedTexture binds the shared texture for
// reading; SharedTextureID then names it.
func (receiver *SpoutReceiver) BindSharedTexture() bool {
	return receiver.query(receiver.lib.BindSharedTexture)
}

// UnbindSharedTexture unbinds the shared texture.
func (receiver *SpoutReceiver) UnbindSharedTexture() bool {
	return receiver.query(receiver.lib.UnbindSharedTexture)
}

// SharedTextureID returns the GL texture bound by
// BindSharedTexture.
func (receiver *SpoutReceiver) SharedTextureID() uint32 {
	var id uint32
	receiver.h.with(func(ptr unsafe.Pointer) {
		id = receiver.lib.SharedTextureID(ptr)
	})

	return id
}

// Close releases the receiver and destroys
// the Spout object.
func (receiver *SpoutReceiver) Close() {
	if receiver == nil || receiver.spoutCore == nil {
		return
	}

	receiver.close()
}
