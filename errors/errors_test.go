package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesType(t *testing.T) {
	inner := &NodeReferenceNotFoundError{Path: "a.md", Base: "/x/root.md"}
	wrapped := Wrap(inner, "building network")

	var nf *NodeReferenceNotFoundError
	require.True(t, As(wrapped, &nf))
	assert.Equal(t, "a.md", nf.Path)
	assert.Contains(t, wrapped.Error(), "building network")
}

func TestNotFoundHintCarriesSuggestions(t *testing.T) {
	err := NewNodeReferenceNotFound("intro.md", "/docs/root.md",
		[]string{"introduction.md", "intro2.md"})

	var nf *NodeReferenceNotFoundError
	require.True(t, As(err, &nf))
	assert.Equal(t, []string{"introduction.md", "intro2.md"}, nf.Suggestions)
	assert.True(t, IsNotFound(err))

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "did you mean: introduction.md, intro2.md", hints[0])
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestNotFoundNoSuggestionsNoHint(t *testing.T) {
	err := NewNodeReferenceNotFound("intro.md", "/docs/root.md", nil)
	assert.Empty(t, GetAllHints(err))
	assert.True(t, IsNotFound(err))
}

func TestCycleMessage(t *testing.T) {
	err := &NodeNetworkValidationError{CyclePath: []string{"/a", "/b", "/a"}}
	assert.Equal(t, "reference cycle: /a -> /b -> /a", err.Error())
}

func TestDepthMessage(t *testing.T) {
	err := &NodeNetworkDepthExceededError{Current: 5, Max: 4}
	assert.Contains(t, err.Error(), "5")
	assert.Contains(t, err.Error(), "4")
}

func TestLimitMessage(t *testing.T) {
	err := &NodeResourceLimitExceededError{Kind: "node_size", Path: "/big.md", Current: 10, Max: 5}
	assert.Contains(t, err.Error(), "node_size")
	assert.Contains(t, err.Error(), "/big.md")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&NodeReferenceNotFoundError{Path: "x"}))
	assert.True(t, IsNotFound(&PathResolutionError{Path: "x", Err: New("boom")}))
	assert.True(t, IsNotFound(Wrap(&NodeReferenceNotFoundError{Path: "x"}, "ctx")))
	assert.False(t, IsNotFound(New("unrelated")))
	assert.False(t, IsNotFound(&FormatParseError{Path: "x", Format: "json", Err: New("bad")}))
}

func TestUnwrapChain(t *testing.T) {
	inner := New("io failure")
	err := &FormatParseError{Path: "/a.yaml", Format: "yaml", Err: inner}
	assert.True(t, Is(err, inner))
}
