package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString_DefaultBuild_ReturnsBareVersion(t *testing.T) {
	require.Equal(t, Version, String())
}

func TestString_WithCommit_IncludesMetadata(t *testing.T) {
	orig := GitCommit
	GitCommit = "abc1234"
	defer func() { GitCommit = orig }()

	require.Contains(t, String(), "abc1234")
	require.Contains(t, String(), Version)
}
