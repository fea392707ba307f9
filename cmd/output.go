package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/chatlens/config"
)

// render writes v in the configured format. Text rendering is supplied
// by the caller since every command has its own table shape.
func render(w io.Writer, format config.OutputFormat, v interface{}, text func(io.Writer) error) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, v)
	case config.OutputFormatYAML:
		return outputYAML(w, v)
	default:
		return text(w)
	}
}

// outputJSON outputs data as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML outputs data as YAML.
func outputYAML(w io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// newTable returns a tabwriter suited to aligned CLI tables.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
