//go:build !linux || !cgo

package collect

import "errors"

// errNVMLUnsupported is returned on platforms where the NVIDIA management
// library bindings are not built.
var errNVMLUnsupported = errors.New("nvml not supported on this platform")

func nvmlAvailable() bool { return false }

func nvmlDevices() ([]nvmlDevice, error) { return nil, errNVMLUnsupported }
