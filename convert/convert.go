// Package convert serializes canonical structures into the supported
// target formats.
package convert

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// StructureToJSON serializes a canonical structure as pretty-printed
// JSON using the codebase's standard indentation.
func StructureToJSON(s model.Structure) (string, error) {
	out, err := json.MarshalIndent(s, "", constants.JSONIndent)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StructureToYAML serializes a canonical structure as YAML using the
// same indentation rules as the rest of the codebase.
func StructureToYAML(s model.Structure) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(s)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ValueToText flattens an arbitrary rendered value into plain text for
// markdown output: strings pass through verbatim, anything else is
// pretty-printed JSON.
func ValueToText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	out, err := json.MarshalIndent(v, "", constants.JSONIndent)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
