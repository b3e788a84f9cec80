package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

func TestExpressionCandidates(t *testing.T) {
	candidates := ExpressionCandidates()
	require.NotEmpty(t, candidates)

	byLabel := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		assert.Equal(t, lsp.CompletionItemKindFunction, c.Kind)
		assert.NotEmpty(t, c.Documentation, "function %s has no documentation", c.Label)
		byLabel[c.Label] = c
	}

	// insert text is the call form with type annotations stripped
	fdt, ok := byLabel["formatDateTime"]
	require.True(t, ok)
	assert.Equal(t, "formatDateTime(timestamp, format)", fdt.InsertText)

	guid, ok := byLabel["newGuid"]
	require.True(t, ok)
	assert.Equal(t, "newGuid()", guid.InsertText)
}

func TestExpressionCandidatesFreshPerCall(t *testing.T) {
	a := ExpressionCandidates()
	b := ExpressionCandidates()
	require.Equal(t, a, b)

	a[0].Label = "mutated"
	assert.NotEqual(t, a[0].Label, ExpressionCandidates()[0].Label)
}

func TestCatalogVersion(t *testing.T) {
	assert.NotEmpty(t, CatalogVersion())
}

func TestUserVariableCandidates(t *testing.T) {
	candidates := UserVariableCandidates([]string{"user.name", "user.age"})
	require.Len(t, candidates, 2)
	assert.Equal(t, "user.name", candidates[0].Label)
	// variables insert verbatim
	assert.Equal(t, "user.name", candidates[0].InsertText)
	assert.Equal(t, lsp.CompletionItemKindVariable, candidates[0].Kind)

	assert.Empty(t, UserVariableCandidates(nil))
}

func TestVariableScopeCandidates(t *testing.T) {
	candidates := VariableScopeCandidates()
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label
		assert.NotEmpty(t, c.Documentation)
	}
	assert.Contains(t, labels, "user.")
	assert.Contains(t, labels, "conversation.")
	assert.Contains(t, labels, "dialog.")
	assert.Contains(t, labels, "turn.")
}

func TestParseScopes(t *testing.T) {
	got := ParseScopes([]string{"expressions", "bogus", "user-variables", "variable-scopes"})
	assert.Equal(t, []Scope{ScopeExpressions, ScopeUserVariables, ScopeVariableScopes}, got)

	assert.Empty(t, ParseScopes(nil))
	assert.Empty(t, ParseScopes([]string{"nope"}))
}

func TestStripTypeAnnotation(t *testing.T) {
	assert.Equal(t, "timestamp", stripTypeAnnotation("timestamp: string"))
	assert.Equal(t, "format", stripTypeAnnotation("format?: string"))
	assert.Equal(t, "bare", stripTypeAnnotation("bare"))
}
