package trigger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringer(t *testing.T) {
	require.Equal(t, "Verification", Verification.String())
	require.Equal(t, "Application", Application.String())
	require.Equal(t, "Type(5)", Type(5).String())
}

func TestFromString(t *testing.T) {
	for _, tr := range []Type{Verification, Application} {
		actual, err := FromString(tr.String())
		require.NoError(t, err)
		require.Equal(t, tr, actual)
	}
	_, err := FromString("System")
	require.Error(t, err)
}
