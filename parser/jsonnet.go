package parser

import (
	"encoding/json"

	jsonnet "github.com/google/go-jsonnet"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// JsonnetParser handles .jsonnet files by evaluating them into JSON and
// then treating the result as a structural document.
type JsonnetParser struct{}

func (p *JsonnetParser) Format() string { return constants.FormatJsonnet }

func (p *JsonnetParser) Detect(content []byte, path string) bool {
	return hasExt(path, ".jsonnet")
}

func (p *JsonnetParser) Parse(content []byte, path string) (model.Structure, error) {
	vm := jsonnet.MakeVM()
	jsonStr, err := vm.EvaluateAnonymousSnippet(path, string(content))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, err
	}
	return wrapTopLevel(doc), nil
}

func (p *JsonnetParser) ToJSON(parsed model.Structure) (model.Structure, error) {
	return parsed, nil
}

func (p *JsonnetParser) ExtractReferences(parsed model.Structure) ([]model.NodeReference, error) {
	return scanStructureRefs(map[string]any(parsed)), nil
}
