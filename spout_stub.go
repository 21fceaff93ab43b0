//go:build !windows || !cgo

package texshare

func newSpoutPlatform() spoutNative {
	return nullSpout{}
}
