// Package completion produces the candidate pool for a completion request.
// Each resolver covers one scope; the server combines resolvers according to
// the session's active scopes and runs the pool through the fuzzy matcher.
package completion

import (
	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// Scope names a category of suggestion source. The client activates scopes
// through initializationOptions and workspace/didChangeConfiguration.
type Scope string

const (
	// ScopeExpressions suggests the built-in expression-language functions.
	ScopeExpressions Scope = "expressions"
	// ScopeUserVariables suggests variable names known to the bot project.
	ScopeUserVariables Scope = "user-variables"
	// ScopeVariableScopes suggests the memory scope prefixes (user.,
	// conversation., ...).
	ScopeVariableScopes Scope = "variable-scopes"
)

// ParseScopes maps raw configuration strings onto known scopes, dropping
// anything unrecognized. Last write wins and order is preserved.
func ParseScopes(raw []string) []Scope {
	scopes := make([]Scope, 0, len(raw))
	for _, s := range raw {
		switch Scope(s) {
		case ScopeExpressions, ScopeUserVariables, ScopeVariableScopes:
			scopes = append(scopes, Scope(s))
		}
	}
	return scopes
}

// Candidate is one suggestion before fuzzy matching.
type Candidate struct {
	// Label is the canonical suggestion text the matcher scores against.
	Label string
	Kind  lsp.CompletionItemKind
	// InsertText is what accepting the suggestion types. The server further
	// trims it to a dot-suffix against the word under the cursor.
	InsertText    string
	Documentation string
}
