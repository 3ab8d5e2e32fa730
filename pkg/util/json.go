package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PrintPrettyJSON prints v as indented JSON to stdout.
func PrintPrettyJSON(v any) error {
	return WritePrettyJSON(os.Stdout, v)
}

// WritePrettyJSON writes v as indented JSON followed by a newline.
func WritePrettyJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
