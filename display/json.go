// Package display holds output helpers shared by the ptsum commands.
package display

import (
	"encoding/json"
)

// MarshalJSON marshals v with the indentation used for all JSON output
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
