package parser

import (
	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/utils"
)

// scanStructureRefs walks a structural document depth-first and collects
// reference objects. Two shapes are recognized:
//
//	{"type": "reference", "path": "...", "ref_type": "...", "label": "..."}
//	{"$ref": "..."}
func scanStructureRefs(doc any) []model.NodeReference {
	var refs []model.NodeReference
	scanValue(doc, &refs)
	return refs
}

func scanValue(v any, refs *[]model.NodeReference) {
	switch val := v.(type) {
	case map[string]any:
		if ref, ok := RefFromMap(val); ok {
			*refs = append(*refs, ref)
			return
		}
		for _, child := range val {
			scanValue(child, refs)
		}
	case []any:
		for _, child := range val {
			scanValue(child, refs)
		}
	}
}

// RefFromMap recognizes a single reference object. Inlining reuses it
// to locate reference spans inside structured content.
func RefFromMap(m map[string]any) (model.NodeReference, bool) {
	// {"$ref": "<path>"} shorthand
	if raw, ok := m[constants.JSONRefKey]; ok {
		if path, ok := utils.SafeStringAssert(raw); ok && path != "" {
			return makeRef(path, "", ""), true
		}
	}
	// explicit reference object
	if t, ok := utils.SafeStringAssert(m[constants.RefTypeKey]); !ok || t != constants.RefMarker {
		return model.NodeReference{}, false
	}
	path, ok := utils.SafeStringAssert(m[constants.RefPathKey])
	if !ok || path == "" {
		return model.NodeReference{}, false
	}
	kind, _ := utils.SafeStringAssert(m[constants.RefKindKey])
	label, _ := utils.SafeStringAssert(m[constants.RefLabelKey])
	return makeRef(path, kind, label), true
}

func makeRef(path, kind, label string) model.NodeReference {
	refType := model.RefTypeFile
	if kind == constants.RefTypeURL || model.IsURLPath(path) {
		refType = model.RefTypeURL
	}
	return model.NodeReference{Path: path, Type: refType, Label: label}
}
