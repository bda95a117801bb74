package parser

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// wrapTopLevel gives every node a map-shaped canonical structure. A
// document whose top level is already a map passes through; anything
// else (list, scalar, null) is wrapped under the content key.
func wrapTopLevel(doc any) model.Structure {
	if m, ok := doc.(map[string]any); ok {
		return model.Structure(m)
	}
	return model.Structure{constants.ContentKey: doc}
}

// YAMLParser handles .yaml/.yml files.
type YAMLParser struct{}

func (p *YAMLParser) Format() string { return constants.FormatYAML }

func (p *YAMLParser) Detect(content []byte, path string) bool {
	return hasExt(path, ".yaml", ".yml")
}

func (p *YAMLParser) Parse(content []byte, path string) (model.Structure, error) {
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	return wrapTopLevel(doc), nil
}

func (p *YAMLParser) ToJSON(parsed model.Structure) (model.Structure, error) {
	// Identity, but verify the structure round-trips as JSON.
	if _, err := json.Marshal(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (p *YAMLParser) ExtractReferences(parsed model.Structure) ([]model.NodeReference, error) {
	return scanStructureRefs(map[string]any(parsed)), nil
}

// JSONParser handles .json files.
type JSONParser struct{}

func (p *JSONParser) Format() string { return constants.FormatJSON }

func (p *JSONParser) Detect(content []byte, path string) bool {
	return hasExt(path, ".json")
}

func (p *JSONParser) Parse(content []byte, path string) (model.Structure, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	return wrapTopLevel(doc), nil
}

func (p *JSONParser) ToJSON(parsed model.Structure) (model.Structure, error) {
	return parsed, nil
}

func (p *JSONParser) ExtractReferences(parsed model.Structure) ([]model.NodeReference, error) {
	return scanStructureRefs(map[string]any(parsed)), nil
}
