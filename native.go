package texshare

import (
	"sync"
	"unsafe"
)

// CGLContext is an opaque CGLContextObj. The caller
// owns it; texshare never retains or destroys it
// except through DestroyContext.
type CGLContext unsafe.Pointer

// MTLDevice is an opaque id<MTLDevice>.
type MTLDevice unsafe.Pointer

// MTLTexture is an opaque id<MTLTexture>.
type MTLTexture unsafe.Pointer

// MTLCommandBuffer is an opaque id<MTLCommandBuffer>.
type MTLCommandBuffer unsafe.Pointer

// TextureRectangle is GL_TEXTURE_RECTANGLE,
// the texture target Syphon publishes.
const TextureRectangle uint32 = 0x84F5

// Rect is a region in texture coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

type descriptionField int

const (
	fieldUUID descriptionField = iota
	fieldName
	fieldAppName
)

type optionKey int

const (
	optionIsPrivate optionKey = iota
	optionAntialiasSampleCount
	optionDepthBufferResolution
	optionStencilBufferResolution
)

type notificationKind int

const (
	notificationAnnounce notificationKind = iota
	notificationUpdate
	notificationRetire
)

// syphonNative is the Syphon C glue function table.
// Pointers are opaque; strings cross as Go strings,
// an empty string meaning NULL. The cgo implementation
// frees every native string it copies.
type syphonNative interface {
	DirectoryShared() unsafe.Pointer
	DirectoryServersCount(dir unsafe.Pointer) int
	DirectoryServerAt(dir unsafe.Pointer, index int) unsafe.Pointer
	DirectoryServersMatching(dir unsafe.Pointer, name, appName string) unsafe.Pointer
	MatchCount(match unsafe.Pointer) int
	MatchAt(match unsafe.Pointer, index int) unsafe.Pointer
	MatchRelease(match unsafe.Pointer)
	NotificationName(kind notificationKind) (string, bool)

	DescriptionString(desc unsafe.Pointer, field descriptionField) (string, bool)
	DescriptionRetain(desc unsafe.Pointer)
	DescriptionRelease(desc unsafe.Pointer)

	OptionsCreate() unsafe.Pointer
	OptionsSetBool(opts unsafe.Pointer, key optionKey, value bool) bool
	OptionsSetUint(opts unsafe.Pointer, key optionKey, value uint64) bool
	OptionsRelease(opts unsafe.Pointer)

	OpenGLServerCreate(name string, ctx CGLContext, opts unsafe.Pointer) unsafe.Pointer
	OpenGLServerRelease(server unsafe.Pointer)
	OpenGLServerHasClients(server unsafe.Pointer) bool
	OpenGLServerDescription(server unsafe.Pointer) unsafe.Pointer
	OpenGLServerPublishFrame(server unsafe.Pointer, texID, target uint32, region Rect, textureSize Size, flipped bool)
	OpenGLServerBindToDrawFrame(server unsafe.Pointer, size Size) bool
	OpenGLServerUnbindAndPublish(server unsafe.Pointer)
	OpenGLServerStop(server unsafe.Pointer)
	OpenGLServerContext(server unsafe.Pointer) CGLContext
	OpenGLServerName(server unsafe.Pointer) (string, bool)
	OpenGLServerSetName(server unsafe.Pointer, name string)
	OpenGLServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer

	OpenGLClientCreate(desc unsafe.Pointer, ctx CGLContext, token uintptr) unsafe.Pointer
	OpenGLClientRelease(client unsafe.Pointer)
	OpenGLClientIsValid(client unsafe.Pointer) bool
	OpenGLClientHasNewFrame(client unsafe.Pointer) bool
	OpenGLClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer
	OpenGLClientStop(client unsafe.Pointer)
	OpenGLClientContext(client unsafe.Pointer) CGLContext
	OpenGLClientDescription(client unsafe.Pointer) unsafe.Pointer

	OpenGLImageRelease(image unsafe.Pointer)
	OpenGLImageTextureName(image unsafe.Pointer) uint32
	OpenGLImageTextureSize(image unsafe.Pointer) Size

	MetalServerCreate(name string, device MTLDevice, opts unsafe.Pointer) unsafe.Pointer
	MetalServerRelease(server unsafe.Pointer)
	MetalServerHasClients(server unsafe.Pointer) bool
	MetalServerDescription(server unsafe.Pointer) unsafe.Pointer
	MetalServerPublishFrame(server unsafe.Pointer, texture MTLTexture, commandBuffer MTLCommandBuffer, region Rect, flipped bool)
	MetalServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer
	MetalServerStop(server unsafe.Pointer)
	MetalServerDevice(server unsafe.Pointer) MTLDevice
	MetalServerName(server unsafe.Pointer) (string, bool)
	MetalServerSetName(server unsafe.Pointer, name string)

	MetalClientCreate(desc unsafe.Pointer, device MTLDevice, token uintptr) unsafe.Pointer
	MetalClientRelease(client unsafe.Pointer)
	MetalClientIsValid(client unsafe.Pointer) bool
	MetalClientHasNewFrame(client unsafe.Pointer) bool
	MetalClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer
	MetalClientStop(client unsafe.Pointer)
	MetalClientDescription(client unsafe.Pointer) unsafe.Pointer

	MetalTextureRelease(texture unsafe.Pointer)

	CGLCreateHeadlessContext() CGLContext
	CGLDestroyContext(ctx CGLContext)
	CGLMakeCurrent(ctx CGLContext)
	GLCreateTextureRectangleRGBA8(width, height int, rgba []byte) uint32
	GLReadTextureRectangleRGBA8(texID uint32, width, height int, out []byte)
	GLDeleteTexture(texID uint32)
}

// spoutNative is the Spout C glue function table.
type spoutNative interface {
	Create() unsafe.Pointer
	Destroy(h unsafe.Pointer)

	SenderSetName(h unsafe.Pointer, name string)
	SenderSetFormat(h unsafe.Pointer, dxgiFormat uint32)
	SenderSendTexture(h unsafe.Pointer, texID, target, width, height uint32, invert bool) bool
	SenderSendFBO(h unsafe.Pointer, fboID, width, height uint32, invert bool) bool
	SenderSendImage(h unsafe.Pointer, pixels []byte, width, height, glFormat uint32, invert bool) bool
	SenderRelease(h unsafe.Pointer)
	SenderIsInitialized(h unsafe.Pointer) bool
	SenderWidth(h unsafe.Pointer) uint32
	SenderHeight(h unsafe.Pointer) uint32
	SenderName(h unsafe.Pointer) (string, bool)
	SenderFormat(h unsafe.Pointer) uint32
	SenderFPS(h unsafe.Pointer) float64
	SenderFrame(h unsafe.Pointer) int64

	ReceiverSetName(h unsafe.Pointer, senderName string)
	ReceiverReceiveTexture(h unsafe.Pointer, texID, target uint32, invert bool) bool
	ReceiverReceiveImage(h unsafe.Pointer, pixels []byte, glFormat uint32, invert bool) bool
	ReceiverRelease(h unsafe.Pointer)
	ReceiverSenderName(h unsafe.Pointer) (string, bool)
	ReceiverIsFrameNew(h unsafe.Pointer) bool
	ReceiverIsUpdated(h unsafe.Pointer) bool
	ReceiverIsConnected(h unsafe.Pointer) bool
	ReceiverSenderWidth(h unsafe.Pointer) uint32
	ReceiverSenderHeight(h unsafe.Pointer) uint32
	ReceiverSenderFormat(h unsafe.Pointer) uint32
	ReceiverSenderFPS(h unsafe.Pointer) float64
	ReceiverSenderFrame(h unsafe.Pointer) int64

	BindSharedTexture(h unsafe.Pointer) bool
	UnbindSharedTexture(h unsafe.Pointer) bool
	SharedTextureID(h unsafe.Pointer) uint32

	SenderCount(h unsafe.Pointer) int
	SenderNameAt(h unsafe.Pointer, index int) (string, bool)
	FindSenderName(h unsafe.Pointer, name string) bool
	ActiveSender(h unsafe.Pointer) (string, bool)
	SetActiveSender(h unsafe.Pointer, name string) bool
	SenderInfo(h unsafe.Pointer, name string) (SenderInfo, bool)

	SetFrameSync(h unsafe.Pointer, name string)
	WaitFrameSync(h unsafe.Pointer, name string, timeoutMS uint32) bool
	EnableFrameSync(h unsafe.Pointer, enabled bool)
	CloseFrameSync(h unsafe.Pointer)
	IsFrameSyncEnabled(h unsafe.Pointer) bool

	WriteMemoryBuffer(h unsafe.Pointer, name string, data []byte) bool
	ReadMemoryBuffer(h unsafe.Pointer, name string, out []byte) int

	MaxSenders(h unsafe.Pointer) int
	BufferMode(h unsafe.Pointer) bool
	SetBufferMode(h unsafe.Pointer, active bool)
	Buffers(h unsafe.Pointer) int
	SetBuffers(h unsafe.Pointer, buffers int)
	CPUMode(h unsafe.Pointer) bool
	SetCPUMode(h unsafe.Pointer, cpuMode bool) bool
}

// nameBufferSize is the fixed buffer used for
// string queries that fill caller memory.
const nameBufferSize = 256

var (
	nativeMu     sync.RWMutex
	syphonTable  syphonNative = newSyphonPlatform()
	spoutTable   spoutNative  = newSpoutPlatform()
	directoryVal *Directory
)

func syphonLib() syphonNative {
	nativeMu.RLock()
	defer nativeMu.RUnlock()
	return syphonTable
}

func spoutLib() spoutNative {
	nativeMu.RLock()
	defer nativeMu.RUnlock()
	return spoutTable
}

// useSyphonNative swaps the Syphon table and drops
// the cached directory. The returned func restores
// the previous table.
func useSyphonNative(n syphonNative) (restore func()) {
	nativeMu.Lock()
	prev, prevDir := syphonTable, directoryVal
	syphonTable, directoryVal = n, nil
	nativeMu.Unlock()

	return func() {
		nativeMu.Lock()
		syphonTable, directoryVal = prev, prevDir
		nativeMu.Unlock()
	}
}

// useSpoutNative swaps the Spout table.
func useSpoutNative(n spoutNative) (restore func()) {
	nativeMu.Lock()
	prev := spoutTable
	spoutTable = n
	nativeMu.Unlock()

	return func() {
		nativeMu.Lock()
		spoutTable = prev
		nativeMu.Unlock()
	}
}
