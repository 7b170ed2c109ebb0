package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)

	assert.Contains(t, info.String(), "csvjoin")
	assert.Contains(t, info.String(), "Version:")
	assert.Contains(t, info.String(), "Go Version:")
}

func TestBuildInfoString(t *testing.T) {
	info := BuildInfo{
		Version:   "v1.0.0",
		BuildDate: "2024-01-01T00:00:00Z",
		GitCommit: "abc123def456",
		GoVersion: "go1.24.4",
		Module:    "github.com/paveg/csvjoin",
	}

	str := info.String()
	assert.Contains(t, str, "Version: v1.0.0\n")
	assert.Contains(t, str, "Build Date: 2024-01-01T00:00:00Z")
	assert.Contains(t, str, "Git Commit: abc123d\n")
	assert.Contains(t, str, "Go Version: go1.24.4")
	assert.Contains(t, str, "Module: github.com/paveg/csvjoin")
	assert.NotContains(t, str, "dirty")
}

func TestBuildInfoStringDirty(t *testing.T) {
	info := BuildInfo{
		Version:   "v1.0.0",
		BuildDate: unknownValue,
		GitCommit: "abc123-dirty",
		Dirty:     true,
	}

	str := info.String()
	assert.Contains(t, str, "Version: v1.0.0 (dirty)")
	assert.Contains(t, str, "Git Commit: abc123\n")
	assert.NotContains(t, str, "Build Date")
}

func TestBuildInfoShort(t *testing.T) {
	assert.Equal(t, "v1.0.0", BuildInfo{Version: "v1.0.0", GitCommit: unknownValue}.Short())
	assert.Equal(t, "v1.0.0 (abc123d)", BuildInfo{Version: "v1.0.0", GitCommit: "abc123def456"}.Short())
}
