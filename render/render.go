// Package render turns a built node network into one output document.
// Two modes: file_first keeps reference markers in place; full inlines
// every referenced node post-order into a single flattened document.
package render

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/convert"
	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/graph"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/parser"
	"github.com/contextweave/contextweave/utils"
	"github.com/contextweave/contextweave/vars"
)

var (
	supportedModes   = []string{constants.RenderModeFull, constants.RenderModeFileFirst}
	supportedFormats = []string{constants.FormatMarkdown, constants.FormatYAML, constants.FormatJSON}
)

// Options selects the output representation for one render call.
type Options struct {
	TargetFormat string
	Mode         string
	Variables    map[string]string
}

// Renderer renders one immutable network. A renderer never mutates node
// content, so several renderers (or concurrent Render calls with their
// own variable maps) may share a network.
type Renderer struct {
	network    *graph.NodeNetwork
	scopes     *vars.ScopeResolver
	sub        *vars.Substitutor
	strategies []Strategy
}

// NewRenderer creates a renderer for the given network. Node names and
// hierarchical paths are collected up front so variable scope inference
// sees every qualifier the traversal can produce.
func NewRenderer(network *graph.NodeNetwork) *Renderer {
	names := make([]string, 0, network.Len())
	for _, id := range network.NodeIDs() {
		names = append(names, network.Node(id).Name())
	}
	var paths []string
	collectPaths(network, network.Root(), network.RootNode().Name(), &paths)
	return &Renderer{
		network:    network,
		scopes:     vars.NewScopeResolver(names, paths),
		sub:        vars.NewSubstitutor(),
		strategies: DefaultStrategies(),
	}
}

// collectPaths enumerates every hierarchical path the traversal can
// reach. The network is acyclic so this terminates; a node reachable by
// several edge chains contributes one path per chain.
func collectPaths(n *graph.NodeNetwork, id, hpath string, out *[]string) {
	*out = append(*out, hpath)
	for _, e := range n.Edges(id) {
		child := n.Node(e.To)
		collectPaths(n, e.To, model.ChildPath(hpath, child.Name()), out)
	}
}

// Render produces the output document for the network root.
func (r *Renderer) Render(ctx context.Context, opts Options) (string, error) {
	if err := utils.ValidateOneOf("render_mode", opts.Mode, supportedModes); err != nil {
		return "", err
	}
	if err := utils.ValidateOneOf("target_format", opts.TargetFormat, supportedFormats); err != nil {
		return "", err
	}
	_, span := otel.Tracer("contextweave").Start(ctx, "network.render")
	span.SetAttributes(
		attribute.String("mode", opts.Mode),
		attribute.String("format", opts.TargetFormat),
	)
	defer span.End()

	root := r.network.RootNode()
	value, err := r.renderNode(root, root.Name(), opts)
	if err != nil {
		return "", err
	}
	return r.convert(value, opts.TargetFormat)
}

// renderNode renders one node at one traversal position. Raw formats
// yield a string, structural formats a structure. Effective variables
// depend on the hierarchical path, so a shared node is recomputed per
// path; there is deliberately no render-level cache.
func (r *Renderer) renderNode(node *model.ContextNode, hpath string, opts Options) (any, error) {
	effective := r.scopes.Resolve(node.Name(), hpath, opts.Variables)
	if isRawFormat(node.Format) {
		content := r.sub.Apply(node.RawContent(), effective)
		if opts.Mode == constants.RenderModeFull {
			return r.inlineString(content, node, hpath, opts)
		}
		return content, nil
	}
	structure := substituteStructure(node.Content, effective, r.sub)
	if opts.Mode == constants.RenderModeFull {
		return r.inlineStructure(structure, node, hpath, opts)
	}
	return structure, nil
}

// inlineString runs every applicable strategy over raw content,
// replacing reference spans with their targets' rendered text.
func (r *Renderer) inlineString(content string, node *model.ContextNode, hpath string, opts Options) (string, error) {
	lookup := func(refPath string) (*model.ContextNode, bool) {
		id, ok := r.network.Target(node.ID, refPath)
		if !ok {
			return nil, false
		}
		return r.network.Node(id), true
	}
	inline := func(child *model.ContextNode) (string, error) {
		value, err := r.renderNode(child, model.ChildPath(hpath, child.Name()), opts)
		if err != nil {
			return "", err
		}
		return convert.ValueToText(value)
	}
	var err error
	for _, s := range r.strategies {
		if !s.CanProcess(content) {
			continue
		}
		content, err = s.ProcessString(content, lookup, inline)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// inlineStructure walks structured content and replaces each reference
// object with the rendered value of its target node. Unresolved
// references stay verbatim.
func (r *Renderer) inlineStructure(v any, node *model.ContextNode, hpath string, opts Options) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		if ref, ok := parser.RefFromMap(val); ok && ref.Type == model.RefTypeFile {
			id, found := r.network.Target(node.ID, ref.Path)
			if !found {
				return val, nil
			}
			child := r.network.Node(id)
			return r.renderNode(child, model.ChildPath(hpath, child.Name()), opts)
		}
		out := make(map[string]any, len(val))
		for k, childVal := range val {
			inlined, err := r.inlineStructure(childVal, node, hpath, opts)
			if err != nil {
				return nil, err
			}
			out[k] = inlined
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, childVal := range val {
			inlined, err := r.inlineStructure(childVal, node, hpath, opts)
			if err != nil {
				return nil, err
			}
			out[i] = inlined
		}
		return out, nil
	case model.Structure:
		return r.inlineStructure(map[string]any(val), node, hpath, opts)
	default:
		return val, nil
	}
}

// convert applies the target-format conversion after inlining.
func (r *Renderer) convert(value any, targetFormat string) (string, error) {
	switch targetFormat {
	case constants.FormatMarkdown:
		return convert.ValueToText(value)
	case constants.FormatJSON:
		return convert.StructureToJSON(asStructure(value))
	case constants.FormatYAML:
		return convert.StructureToYAML(asStructure(value))
	default:
		return "", errors.Newf("unsupported target format %q", targetFormat)
	}
}

// asStructure lifts a rendered value back into canonical structure form
// for structural serialization.
func asStructure(value any) model.Structure {
	switch v := value.(type) {
	case model.Structure:
		return v
	case map[string]any:
		return model.Structure(v)
	case string:
		return model.Structure{constants.RawContentKey: v}
	default:
		return model.Structure{constants.ContentKey: v}
	}
}

func isRawFormat(format string) bool {
	return format == constants.FormatMarkdown || format == constants.FormatJinja
}

// substituteStructure deep-copies structured content, applying variable
// substitution to every string leaf. The source structure is never
// mutated; the network stays safe for concurrent renders.
func substituteStructure(v any, effective map[string]string, sub *vars.Substitutor) any {
	switch val := v.(type) {
	case string:
		return sub.Apply(val, effective)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = substituteStructure(child, effective, sub)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = substituteStructure(child, effective, sub)
		}
		return out
	case model.Structure:
		return substituteStructure(map[string]any(val), effective, sub)
	default:
		return val
	}
}
