// Package render writes reports, batch results and catalog information as
// JSON, YAML or a colored terminal summary.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatSummary, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("%w: %q (want summary, json or yaml)", ErrUnknownFormat, name)
	}
}

// JSON writes v indented by two spaces.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Encode writes v as JSON or YAML depending on f.
func Encode(w io.Writer, f Format, v any) error {
	if f == FormatYAML {
		return YAML(w, v)
	}
	return JSON(w, v)
}
