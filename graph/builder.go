package graph

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/resolver"
	"github.com/contextweave/contextweave/utils"
)

// visitState tracks each node through the traversal.
// Unvisited -> OnStack -> Resolved; OnStack revisited is a cycle.
type visitState int

const (
	unvisited visitState = iota
	onStack
	resolved
)

// Warning is a recoverable build problem recorded in best-effort mode.
// The offending reference is left unexpanded.
type Warning struct {
	NodeID  string
	RefPath string
	Err     error
}

// BuildResult is a built network plus its build id and any best-effort
// warnings.
type BuildResult struct {
	Network  *NodeNetwork
	BuildID  uuid.UUID
	Warnings []Warning
}

// Builder constructs node networks by depth-first traversal from a root
// reference, enforcing cycle, depth and size invariants as it goes.
type Builder struct {
	resolver resolver.Resolver
	config   model.NetworkConfig
}

// NewBuilder creates a builder over the given resolver and limits. Zero
// limits fall back to defaults.
func NewBuilder(res resolver.Resolver, cfg model.NetworkConfig) *Builder {
	if res == nil {
		res = resolver.NewFileResolver(nil)
	}
	return &Builder{resolver: res, config: cfg.WithDefaults()}
}

// build carries the mutable traversal state for one Build call.
type build struct {
	*Builder
	network   *NodeNetwork
	states    map[string]visitState
	totalSize int
	warnings  []Warning
}

// Build resolves, parses and validates the network rooted at rootPath.
// The traversal is single-threaded and depth-first; the depth bound is
// enforced before descending, so stack use never exceeds the configured
// maximum regardless of input.
func (bl *Builder) Build(ctx context.Context, rootPath string) (*BuildResult, error) {
	buildID := uuid.New()
	ctx = utils.WithBuildID(ctx, buildID.String())
	ctx, span := otel.Tracer("contextweave").Start(ctx, "network.build")
	span.SetAttributes(attribute.String("root", rootPath))
	defer span.End()

	b := &build{
		Builder: bl,
		network: &NodeNetwork{
			nodes: make(map[string]*model.ContextNode),
			edges: make(map[string][]Edge),
		},
		states: make(map[string]visitState),
	}

	root, err := b.resolver.Resolve(rootPath, "")
	if err != nil {
		return nil, err
	}
	b.network.root = root.ID
	if err := b.admit(root); err != nil {
		return nil, err
	}
	if err := b.expand(ctx, root, 0, []string{root.ID}); err != nil {
		return nil, err
	}
	utils.DebugCtx(ctx, "network built",
		"root", root.ID, "nodes", b.network.Len(), "bytes", b.totalSize)
	return &BuildResult{Network: b.network, BuildID: buildID, Warnings: b.warnings}, nil
}

// admit checks a newly parsed node against the size limits and accounts
// it into the network.
func (b *build) admit(node *model.ContextNode) error {
	if node.Size > b.config.MaxNodeSize {
		return &errors.NodeResourceLimitExceededError{
			Kind:    constants.LimitKindNodeSize,
			Path:    node.ID,
			Current: node.Size,
			Max:     b.config.MaxNodeSize,
		}
	}
	b.totalSize += node.Size
	if b.totalSize > b.config.MaxNetworkSize {
		return &errors.NodeResourceLimitExceededError{
			Kind:    constants.LimitKindNetworkSize,
			Path:    node.ID,
			Current: b.totalSize,
			Max:     b.config.MaxNetworkSize,
		}
	}
	b.network.nodes[node.ID] = node
	return nil
}

// expand processes one node: resolve each file reference, detect cycles,
// and recurse into unvisited targets. chain is the id path from the root
// to node, inclusive.
func (b *build) expand(ctx context.Context, node *model.ContextNode, depth int, chain []string) error {
	b.states[node.ID] = onStack
	for _, ref := range node.FileReferences() {
		target, err := b.resolver.Resolve(ref.Path, node.ID)
		if err != nil {
			if b.config.BestEffort && errors.IsNotFound(err) {
				utils.WarnCtx(ctx, "unresolvable reference left unexpanded",
					"node", node.ID, "ref", ref.Path, "err", err.Error())
				b.warnings = append(b.warnings, Warning{NodeID: node.ID, RefPath: ref.Path, Err: err})
				continue
			}
			return err
		}
		if b.states[target.ID] == onStack {
			return &errors.NodeNetworkValidationError{CyclePath: cyclePath(chain, target.ID)}
		}
		b.network.edges[node.ID] = append(b.network.edges[node.ID],
			Edge{From: node.ID, To: target.ID, Path: ref.Path, Label: ref.Label})
		if b.states[target.ID] == resolved {
			continue // dedup: parsed once, already expanded
		}
		if depth+1 > b.config.MaxDepth {
			return &errors.NodeNetworkDepthExceededError{Current: depth + 1, Max: b.config.MaxDepth}
		}
		if err := b.admit(target); err != nil {
			return err
		}
		if err := b.expand(ctx, target, depth+1, append(chain, target.ID)); err != nil {
			return err
		}
	}
	b.states[node.ID] = resolved
	return nil
}

// cyclePath trims the root chain to the loop itself: it starts and ends
// at the repeated node id.
func cyclePath(chain []string, repeated string) []string {
	for i, id := range chain {
		if id == repeated {
			out := make([]string, 0, len(chain)-i+1)
			out = append(out, chain[i:]...)
			return append(out, repeated)
		}
	}
	return append(append([]string{}, chain...), repeated)
}
