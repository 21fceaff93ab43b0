package texshare

import "github.com/gogpu/gputypes"

// GL pixel formats accepted by the Spout
// pixel-buffer paths.
const (
	GLRGB       uint32 = 0x1907
	GLRGBA      uint32 = 0x1908
	GLLuminance uint32 = 0x1909
	GLBGR       uint32 = 0x80E0
	GLBGRA      uint32 = 0x80E1
)

// DXGI formats Spout senders share.
const (
	DXGIFormatUnknown       uint32 = 0
	DXGIFormatR8G8B8A8Unorm uint32 = 28
	DXGIFormatR8Unorm       uint32 = 61
	DXGIFormatB8G8R8A8Unorm uint32 = 87
)

// BytesPerPixel returns the size of one pixel in the
// given GL format, 0 for formats texshare does not know.
func BytesPerPixel(glFormat uint32) int {
	switch glFormat {
	case GLRGBA, GLBGRA:
		return 4
	case GLRGB, GLBGR:
		return 3
	case GLLuminance:
		return 1
	default:
		return 0
	}
}

// DXGIFormat maps a WebGPU texture format to the DXGI
// format Spout shares. ok is false for formats with no
// shareable equivalent.
func DXGIFormat(format gputypes.TextureFormat) (dxgi uint32, ok bool) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return DXGIFormatR8G8B8A8Unorm, true
	case gputypes.TextureFormatBGRA8Unorm:
		return DXGIFormatB8G8R8A8Unorm, true
	case gputypes.TextureFormatR8Unorm:
		return DXGIFormatR8Unorm, true
	default:
		return DXGIFormatUnknown, false
	}
}
