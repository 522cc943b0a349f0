package display

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"total_paths": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"total_paths\": 3\n}", string(data))
}

func TestShouldOutputJSON(t *testing.T) {
	t.Run("nil command", func(t *testing.T) {
		assert.False(t, ShouldOutputJSON(nil))
	})

	t.Run("flag not defined", func(t *testing.T) {
		cmd := &cobra.Command{Use: "x"}
		assert.False(t, ShouldOutputJSON(cmd))
	})

	t.Run("flag set", func(t *testing.T) {
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().Bool("json", false, "")
		require.NoError(t, cmd.Flags().Set("json", "true"))
		assert.True(t, ShouldOutputJSON(cmd))
	})

	t.Run("flag unset", func(t *testing.T) {
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().Bool("json", false, "")
		assert.False(t, ShouldOutputJSON(cmd))
	})
}
