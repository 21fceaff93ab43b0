package texshare

import (
	"go.uber.org/zap"
)

// CreateHeadlessContext creates an offscreen CGL context,
// nil when unavailable. Destroy it with DestroyContext.
func CreateHeadlessContext() CGLContext {
	return syphonLib().CGLCreateHeadlessContext()
}

// DestroyContext destroys a context made by
// CreateHeadlessContext. nil is ignored.
func DestroyContext(ctx CGLContext) {
	if ctx == nil {
		return
	}

	syphonLib().CGLDestroyContext(ctx)
}

// MakeCurrent makes ctx current on the calling OS thread.
// Lock the goroutine with runtime.LockOSThread first.
func MakeCurrent(ctx CGLContext) {
	syphonLib().CGLMakeCurrent(ctx)
}

// CreateTextureRectangleRGBA8 uploads rgba as a
// GL_TEXTURE_RECTANGLE RGBA8 texture on the current
// context. It returns 0 when rgba is shorter than
// width*height*4.
func CreateTextureRectangleRGBA8(width, height int, rgba []byte) uint32 {
	if !pixelBufferFits(len(rgba), width, height, 4) {
		return 0
	}

	return syphonLib().GLCreateTextureRectangleRGBA8(width, height, rgba)
}

// ReadTextureRectangleRGBA8 reads a rectangle texture
// back into out on the current context. It reports
// false, reading nothing, when out is too small.
func ReadTextureRectangleRGBA8(texID uint32, width, height int, out []byte) bool {
	if !pixelBufferFits(len(out), width, height, 4) {
		return false
	}

	syphonLib().GLReadTextureRectangleRGBA8(texID, width, height, out)

	return true
}

// DeleteTexture deletes a GL texture. 0 is ignored.
func DeleteTexture(texID uint32) {
	if texID == 0 {
		return
	}

	syphonLib().GLDeleteTexture(texID)
}

// pixelBufferFits reports whether a buffer of size n
// holds width*height pixels of bpp bytes each.
func pixelBufferFits(n, width, height, bpp int) bool {
	if width < 0 || height < 0 || bpp <= 0 {
		return false
	}

	need := uint64(width) * uint64(height) * uint64(bpp)
	if uint64(n) < need {
		Logger().Warn("pixel buffer too small",
			zap.Int("len", n),
			zap.Uint64("need", need),
			zap.Int("width", width),
			zap.Int("height", height))
		return false
	}

	return true
}
