package platform

import (
	"fmt"
	"runtime"
)

// Detect returns the descriptor of the host the tool is running on.
func Detect() (Descriptor, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (Descriptor, error) {
	o, err := ParseOS(goos)
	if err != nil {
		return Descriptor{}, fmt.Errorf("detecting host platform: %w", err)
	}
	return Descriptor{OS: o, Arch: ParseArch(goarch)}, nil
}
