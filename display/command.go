package display

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on
// its --json flag
func ShouldOutputJSON(cmd *cobra.Command) bool {
	// Handle nil command gracefully (e.g., when called from result
	// rendering without command context)
	if cmd == nil {
		return false
	}

	jsonFlag, err := cmd.Flags().GetBool("json")
	if err != nil {
		return false
	}
	return jsonFlag
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
