package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// setVersion swaps the build version for one test and restores it after.
func setVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	resetParsed()
	Version = v
	t.Cleanup(func() {
		Version = prev
		resetParsed()
	})
}

func TestParsed(t *testing.T) {
	valid := []string{"v1.0.0", "1.0.0", "v0.4.2", "v1.0.0-beta.1", "v1.0.0-rc.2+build456"}
	for _, v := range valid {
		t.Run(v, func(t *testing.T) {
			setVersion(t, v)
			assert.NotNil(t, Parsed(), "should parse %s", v)
		})
	}

	invalid := []string{"dev", "unknown", "", "not-a-version"}
	for _, v := range invalid {
		t.Run("invalid_"+v, func(t *testing.T) {
			setVersion(t, v)
			assert.Nil(t, Parsed())
		})
	}
}

func TestParsed_Cached(t *testing.T) {
	setVersion(t, "v2.1.0")
	first := Parsed()
	// Mutating Version without a reset must not change the cached result.
	Version = "v9.9.9"
	assert.Same(t, first, Parsed())
}

func TestIsPrerelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"v1.0.0", false},
		{"v1.0.0-beta.1", true},
		{"v1.0.0-rc.2", true},
		{"v1.0.0+build123", false}, // metadata only, not prerelease
		{"dev", false},             // unparseable
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			setVersion(t, tt.version)
			assert.Equal(t, tt.want, IsPrerelease())
		})
	}
}

func TestIsDevBuild(t *testing.T) {
	setVersion(t, "dev")
	assert.True(t, IsDevBuild())

	setVersion(t, "v1.0.0")
	assert.False(t, IsDevBuild())
}

func TestShortAndInfo(t *testing.T) {
	setVersion(t, "v1.2.3")
	prevCommit := Commit
	Commit = "abcdef1234567890"
	t.Cleanup(func() { Commit = prevCommit })

	assert.Equal(t, "v1.2.3", Short())
	assert.Contains(t, Info(), "leetvault v1.2.3")
	assert.Contains(t, Info(), "(abcdef1)", "commit should be shortened")
}
