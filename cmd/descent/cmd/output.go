package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// errNonFiniteJSON replaces encoding/json's UnsupportedValueError, which is
// what NaN or infinite trajectory points produce.
var errNonFiniteJSON = errors.New("output contains NaN or infinite values, which JSON cannot represent; use --output yaml")

// encode writes v to out as json or yaml.
func encode(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			var unsupported *json.UnsupportedValueError
			if errors.As(err, &unsupported) {
				return errNonFiniteJSON
			}
			return err
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
