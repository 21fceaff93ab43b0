package texshare

import "unsafe"

// nullSyphon is the Syphon table on platforms without
// Syphon. Every constructor returns nil, so every
// wrapper reports ErrUnavailable or absent values.
type nullSyphon struct{}

func (nullSyphon) DirectoryShared() unsafe.Pointer                      { return nil }
func (nullSyphon) DirectoryServersCount(unsafe.Pointer) int             { return 0 }
func (nullSyphon) DirectoryServerAt(unsafe.Pointer, int) unsafe.Pointer { return nil }
func (nullSyphon) DirectoryServersMatching(unsafe.Pointer, string, string) unsafe.Pointer {
	return nil
}
func (nullSyphon) MatchCount(unsafe.Pointer) int                    { return 0 }
func (nullSyphon) MatchAt(unsafe.Pointer, int) unsafe.Pointer       { return nil }
func (nullSyphon) MatchRelease(unsafe.Pointer)                      {}
func (nullSyphon) NotificationName(notificationKind) (string, bool) { return "", false }

func (nullSyphon) DescriptionString(unsafe.Pointer, descriptionField) (string, bool) {
	return "", false
}
func (nullSyphon) DescriptionRetain(unsafe.Pointer)  {}
func (nullSyphon) DescriptionRelease(unsafe.Pointer) {}

func (nullSyphon) OptionsCreate() unsafe.Pointer                         { return nil }
func (nullSyphon) OptionsSetBool(unsafe.Pointer, optionKey, bool) bool   { return false }
func (nullSyphon) OptionsSetUint(unsafe.Pointer, optionKey, uint64) bool { return false }
func (nullSyphon) OptionsRelease(unsafe.Pointer)                         {}

func (nullSyphon) OpenGLServerCreate(string, CGLContext, unsafe.Pointer) unsafe.Pointer {
	return nil
}
func (nullSyphon) OpenGLServerRelease(unsafe.Pointer)                                        {}
func (nullSyphon) OpenGLServerHasClients(unsafe.Pointer) bool                                { return false }
func (nullSyphon) OpenGLServerDescription(unsafe.Pointer) unsafe.Pointer                     { return nil }
func (nullSyphon) OpenGLServerPublishFrame(unsafe.Pointer, uint32, uint32, Rect, Size, bool) {}
func (nullSyphon) OpenGLServerBindToDrawFrame(unsafe.Pointer, Size) bool                     { return false }
func (nullSyphon) OpenGLServerUnbindAndPublish(unsafe.Pointer)                               {}
func (nullSyphon) OpenGLServerStop(unsafe.Pointer)                                           {}
func (nullSyphon) OpenGLServerContext(unsafe.Pointer) CGLContext                             { return nil }
func (nullSyphon) OpenGLServerName(unsafe.Pointer) (string, bool)                            { return "", false }
func (nullSyphon) OpenGLServerSetName(unsafe.Pointer, string)                                {}
func (nullSyphon) OpenGLServerNewFrameImage(unsafe.Pointer) unsafe.Pointer                   { return nil }

func (nullSyphon) OpenGLClientCreate(unsafe.Pointer, CGLContext, uintptr) unsafe.Pointer {
	return nil
}
func (nullSyphon) OpenGLClientRelease(unsafe.Pointer)                      {}
func (nullSyphon) OpenGLClientIsValid(unsafe.Pointer) bool                 { return false }
func (nullSyphon) OpenGLClientHasNewFrame(unsafe.Pointer) bool             { return false }
func (nullSyphon) OpenGLClientNewFrameImage(unsafe.Pointer) unsafe.Pointer { return nil }
func (nullSyphon) OpenGLClientStop(unsafe.Pointer)                         {}
func (nullSyphon) OpenGLClientContext(unsafe.Pointer) CGLContext           { return nil }
func (nullSyphon) OpenGLClientDescription(unsafe.Pointer) unsafe.Pointer   { return nil }

func (nullSyphon) OpenGLImageRelease(unsafe.Pointer)            {}
func (nullSyphon) OpenGLImageTextureName(unsafe.Pointer) uint32 { return 0 }
func (nullSyphon) OpenGLImageTextureSize(unsafe.Pointer) Size   { return Size{} }

func (nullSyphon) MetalServerCreate(string, MTLDevice, unsafe.Pointer) unsafe.Pointer {
	return nil
}
func (nullSyphon) MetalServerRelease(unsafe.Pointer)                    {}
func (nullSyphon) MetalServerHasClients(unsafe.Pointer) bool            { return false }
func (nullSyphon) MetalServerDescription(unsafe.Pointer) unsafe.Pointer { return nil }
func (nullSyphon) MetalServerPublishFrame(unsafe.Pointer, MTLTexture, MTLCommandBuffer, Rect, bool) {
}
func (nullSyphon) MetalServerNewFrameImage(unsafe.Pointer) unsafe.Pointer { return nil }
func (nullSyphon) MetalServerStop(unsafe.Pointer)                         {}
func (nullSyphon) MetalServerDevice(unsafe.Pointer) MTLDevice             { return nil }
func (nullSyphon) MetalServerName(unsafe.Pointer) (string, bool)          { return "", false }
func (nullSyphon) MetalServerSetName(unsafe.Pointer, string)              {}

func (nullSyphon) MetalClientCreate(unsafe.Pointer, MTLDevice, uintptr) unsafe.Pointer {
	return nil
}
func (nullSyphon) MetalClientRelease(unsafe.Pointer)                      {}
func (nullSyphon) MetalClientIsValid(unsafe.Pointer) bool                 { return false }
func (nullSyphon) MetalClientHasNewFrame(unsafe.Pointer) bool             { return false }
func (nullSyphon) MetalClientNewFrameImage(unsafe.Pointer) unsafe.Pointer { return nil }
func (nullSyphon) MetalClientStop(unsafe.Pointer)                         {}
func (nullSyphon) MetalClientDescription(unsafe.Pointer) unsafe.Pointer   { return nil }

func (nullSyphon) MetalTextureRelease(unsafe.Pointer) {}

func (nullSyphon) CGLCreateHeadlessContext() CGLContext                  { return nil }
func (nullSyphon) CGLDestroyContext(CGLContext)                          {}
func (nullSyphon) CGLMakeCurrent(CGLContext)                             {}
func (nullSyphon) GLCreateTextureRectangleRGBA8(int, int, []byte) uint32 { return 0 }
func (nullSyphon) GLReadTextureRectangleRGBA8(uint32, int, int, []byte)  {}
func (nullSyphon) GLDeleteTexture(uint32)                                {}

// nullSpout is the Spout table on platforms without
// Spout. Create returns nil.
type nullSpout struct{}

func (nullSpout) Create() unsafe.Pointer { return nil }
func (nullSpout) Destroy(unsafe.Pointer) {}

func (nullSpout) SenderSetName(unsafe.Pointer, string)   {}
func (nullSpout) SenderSetFormat(unsafe.Pointer, uint32) {}
func (nullSpout) SenderSendTexture(unsafe.Pointer, uint32, uint32, uint32, uint32, bool) bool {
	return false
}
func (nullSpout) SenderSendFBO(unsafe.Pointer, uint32, uint32, uint32, bool) bool { return false }
func (nullSpout) SenderSendImage(unsafe.Pointer, []byte, uint32, uint32, uint32, bool) bool {
	return false
}
func (nullSpout) SenderRelease(unsafe.Pointer)             {}
func (nullSpout) SenderIsInitialized(unsafe.Pointer) bool  { return false }
func (nullSpout) SenderWidth(unsafe.Pointer) uint32        { return 0 }
func (nullSpout) SenderHeight(unsafe.Pointer) uint32       { return 0 }
func (nullSpout) SenderName(unsafe.Pointer) (string, bool) { return "", false }
func (nullSpout) SenderFormat(unsafe.Pointer) uint32       { return 0 }
func (nullSpout) SenderFPS(unsafe.Pointer) float64         { return 0 }
func (nullSpout) SenderFrame(unsafe.Pointer) int64         { return 0 }

func (nullSpout) ReceiverSetName(unsafe.Pointer, string) {}
func (nullSpout) ReceiverReceiveTexture(unsafe.Pointer, uint32, uint32, bool) bool {
	return false
}
func (nullSpout) ReceiverReceiveImage(unsafe.Pointer, []byte, uint32, bool) bool { return false }
func (nullSpout) ReceiverRelease(unsafe.Pointer)                                 {}
func (nullSpout) ReceiverSenderName(unsafe.Pointer) (string, bool)               { return "", false }
func (nullSpout) ReceiverIsFrameNew(unsafe.Pointer) bool                         { return false }
func (nullSpout) ReceiverIsUpdated(unsafe.Pointer) bool                          { return false }
func (nullSpout) ReceiverIsConnected(unsafe.Pointer) bool                        { return false }
func (nullSpout) ReceiverSenderWidth(unsafe.Pointer) uint32                      { return 0 }
func (nullSpout) ReceiverSenderHeight(unsafe.Pointer) uint32                     { return 0 }
func (nullSpout) ReceiverSenderFormat(unsafe.Pointer) uint32                     { return 0 }
func (nullSpout) ReceiverSenderFPS(unsafe.Pointer) float64                       { return 0 }
func (nullSpout) ReceiverSenderFrame(unsafe.Pointer) int64                       { return 0 }

func (nullSpout) BindSharedTexture(unsafe.Pointer) bool   { return false }
func (nullSpout) UnbindSharedTexture(unsafe.Pointer) bool { return false }
func (nullSpout) SharedTextureID(unsafe.Pointer) uint32   { return 0 }

func (nullSpout) SenderCount(unsafe.Pointer) int                  { return 0 }
func (nullSpout) SenderNameAt(unsafe.Pointer, int) (string, bool) { return "", false }
func (nullSpout) FindSenderName(unsafe.Pointer, string) bool      { return false }
func (nullSpout) ActiveSender(unsafe.Pointer) (string, bool)      { return "", false }
func (nullSpout) SetActiveSender(unsafe.Pointer, string) bool     { return false }
func (nullSpout) SenderInfo(unsafe.Pointer, string) (SenderInfo, bool) {
	return SenderInfo{}, false
}

func (nullSpout) SetFrameSync(unsafe.Pointer, string)               {}
func (nullSpout) WaitFrameSync(unsafe.Pointer, string, uint32) bool { return false }
func (nullSpout) EnableFrameSync(unsafe.Pointer, bool)              {}
func (nullSpout) CloseFrameSync(unsafe.Pointer)                     {}
func (nullSpout) IsFrameSyncEnabled(unsafe.Pointer) bool            { return false }

func (nullSpout) WriteMemoryBuffer(unsafe.Pointer, string, []byte) bool { return false }
func (nullSpout) ReadMemoryBuffer(unsafe.Pointer, string, []byte) int   { return 0 }

func (nullSpout) MaxSenders(unsafe.Pointer) int        { return 0 }
func (nullSpout) BufferMode(unsafe.Pointer) bool       { return false }
func (nullSpout) SetBufferMode(unsafe.Pointer, bool)   {}
func (nullSpout) Buffers(unsafe.Pointer) int           { return 0 }
func (nullSpout) SetBuffers(unsafe.Pointer, int)       {}
func (nullSpout) CPUMode(unsafe.Pointer) bool          { return false }
func (nullSpout) SetCPUMode(unsafe.Pointer, bool) bool { return false }
