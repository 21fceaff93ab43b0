//go:build !darwin || !cgo

package texshare

func newSyphonPlatform() syphonNative {
	return nullSyphon{}
}
