package platform

import (
	"errors"
	"fmt"
	"strings"
)

// OS is a target operating system recognized by the packaging recipe.
type OS string

const (
	Windows OS = "Windows"
	Android OS = "Android"
	Macos   OS = "Macos"
	Linux   OS = "Linux"
)

// Architecture names as they appear in build settings.
const (
	X86_64 = "x86_64"
	X86    = "x86"
	ArmV8  = "armv8"
	ArmV7  = "armv7"
)

// SupportedOS lists the operating systems Resolve accepts, in display order.
var SupportedOS = []OS{Windows, Android, Macos, Linux}

// SupportedNames returns SupportedOS as a comma-separated list.
func SupportedNames() string {
	names := make([]string, len(SupportedOS))
	for i, o := range SupportedOS {
		names[i] = string(o)
	}
	return strings.Join(names, ", ")
}

var (
	// ErrUnrecognizedArch is returned when an architecture has no mapping for
	// the target OS. It is a configuration error and aborts packaging.
	ErrUnrecognizedArch = errors.New("unrecognized architecture")

	// ErrUnsupportedOS is returned for an operating system outside SupportedOS.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// Descriptor identifies the platform a package is assembled for.
type Descriptor struct {
	OS   OS     `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s", d.OS, d.Arch)
}

// Identifier is the canonical platform path segment, e.g. "linux-x86_64".
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// androidABI maps build architectures to Android ABI directory names.
var androidABI = map[string]string{
	ArmV8:  "arm64-v8a",
	ArmV7:  "armeabi-v7a",
	X86:    "x86",
	X86_64: "x86_64",
}

// Resolve maps a descriptor to its identifier. It has no side effects and
// is recomputed on every call.
func Resolve(d Descriptor) (Identifier, error) {
	switch d.OS {
	case Windows:
		// Anything that is not x86_64 is packaged as 32-bit.
		if d.Arch == X86_64 {
			return "windows-x86_64", nil
		}
		return "windows-x86", nil
	case Android:
		abi, ok := androidABI[d.Arch]
		if !ok {
			return "", fmt.Errorf("%w %q for %s", ErrUnrecognizedArch, d.Arch, Android)
		}
		return Identifier("android-" + abi), nil
	case Macos:
		return "macos-x86_64", nil
	case Linux:
		return "linux-x86_64", nil
	default:
		// An empty identifier would make every rule target the package root.
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedOS, string(d.OS), SupportedNames())
	}
}

// ParseOS accepts the canonical names case-insensitively, plus the Go
// spelling "darwin" for Macos.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return Windows, nil
	case "android":
		return Android, nil
	case "macos", "darwin":
		return Macos, nil
	case "linux":
		return Linux, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedOS, s, SupportedNames())
}

// goArch maps GOARCH values to build-setting architecture names.
var goArch = map[string]string{
	"amd64": X86_64,
	"386":   X86,
	"arm64": ArmV8,
	"arm":   ArmV7,
}

// ParseArch normalizes an architecture string. Go spellings are translated;
// any other value is kept (lowercased) so Resolve can reject it per OS.
func ParseArch(s string) string {
	a := strings.ToLower(strings.TrimSpace(s))
	if mapped, ok := goArch[a]; ok {
		return mapped
	}
	return a
}

// Parse builds a Descriptor from user-supplied strings.
func Parse(osName, arch string) (Descriptor, error) {
	o, err := ParseOS(osName)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{OS: o, Arch: ParseArch(arch)}, nil
}
