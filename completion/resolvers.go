package completion

import (
	"slices"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// Resolvers are pure: they build their candidate lists from their inputs on
// every call, so the server can share them across connections without
// synchronization.

// ExpressionCandidates enumerates the built-in expression-language
// functions. Insert text carries the parameter names without their type
// annotations, e.g. "formatDateTime(timestamp, format)".
func ExpressionCandidates() []Candidate {
	return slices.Clone(catalogCandidates())
}

// UserVariableCandidates maps the variable names currently known to the
// project into candidates. The insert text is the variable name verbatim.
func UserVariableCandidates(variables []string) []Candidate {
	candidates := make([]Candidate, 0, len(variables))
	for _, name := range variables {
		candidates = append(candidates, Candidate{
			Label:         name,
			Kind:          lsp.CompletionItemKindVariable,
			InsertText:    name,
			Documentation: "Variable defined in the current bot project.",
		})
	}
	return candidates
}

var variableScopes = []Candidate{
	{
		Label:         "user.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "user.",
		Documentation: "Properties scoped to the user. Persisted across conversations for as long as the bot knows the user.",
	},
	{
		Label:         "conversation.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "conversation.",
		Documentation: "Properties scoped to the current conversation. Discarded when the conversation ends.",
	},
	{
		Label:         "dialog.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "dialog.",
		Documentation: "Properties scoped to the active dialog. Discarded when the dialog completes.",
	},
	{
		Label:         "turn.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "turn.",
		Documentation: "Properties scoped to the current turn. Cleared when the turn finishes.",
	},
	{
		Label:         "this.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "this.",
		Documentation: "Properties of the active action instance.",
	},
	{
		Label:         "settings.",
		Kind:          lsp.CompletionItemKindKeyword,
		InsertText:    "settings.",
		Documentation: "Read-only bot configuration values.",
	},
}

// VariableScopeCandidates returns the fixed memory scope prefixes with their
// lifetime semantics.
func VariableScopeCandidates() []Candidate {
	return slices.Clone(variableScopes)
}
