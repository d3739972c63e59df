package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
	parts := strings.Split(Version, ".")
	assert.GreaterOrEqual(t, len(parts), 2, "Version %q should have at least major.minor", Version)
}

func TestSDKName(t *testing.T) {
	assert.Equal(t, "codaio-go", SDKName)
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	for _, want := range []string{SDKName, Version, runtime.GOOS, runtime.GOARCH, "api/" + APIVersion} {
		assert.Contains(t, ua, want)
	}
}

func TestShortUserAgent(t *testing.T) {
	assert.Equal(t, SDKName+"/"+Version, ShortUserAgent())
}
