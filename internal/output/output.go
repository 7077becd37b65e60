// Package output provides output formatting utilities for the wikiplot CLI.
package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	os.Stdout.Write(data)
	fmt.Println()
	return nil
}
