package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_PrintsBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"release", "1.4.0", "st version 1.4.0"},
		{"default", "dev", "st version dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupCLITest()
			defer cleanup()

			original := version
			version = tt.version
			defer func() { version = original }()

			out, err := run("version")

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestVersionCmd_NeedsNoServices(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()
	services = nil
	builder = nil

	_, err := run("version")
	assert.NoError(t, err)
}
