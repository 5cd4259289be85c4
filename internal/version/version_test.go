package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldC, oldT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldT })

	assert.Equal(t, "seobuilder dev (commit unknown, built unknown)", String())

	Version, GitCommit, BuildTime = "v1.2.0", "abc123", "2026-10-17"
	assert.Equal(t, "seobuilder v1.2.0 (commit abc123, built 2026-10-17)", String())
}
