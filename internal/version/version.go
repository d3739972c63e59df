// Package version provides SDK version information.
package version

import (
	"fmt"
	"runtime"
)

// SDK version constants
const (
	// Version is the current SDK version.
	Version = "0.6.0"

	// SDKName is the name of the SDK.
	SDKName = "codaio-go"

	// APIVersion is the Coda REST API version the SDK speaks.
	APIVersion = "v1"
)

// UserAgent returns the default user agent string for the SDK.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s) api/%s", SDKName, Version, runtime.GOOS, runtime.GOARCH, APIVersion)
}

// ShortUserAgent returns a shorter user agent string.
func ShortUserAgent() string {
	return fmt.Sprintf("%s/%s", SDKName, Version)
}
