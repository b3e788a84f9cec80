package server

import (
	"context"

	"github.com/microsoft/botframework-composer-lsp/completion"
	"github.com/microsoft/botframework-composer-lsp/fuzzy"
	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// Completion runs the full pipeline: locate the word under the cursor,
// gather candidates from the resolvers the session's scopes activate, rank
// them with the fuzzy matcher and emit completion items. A missing document
// or a cursor with no word yields a nil list, which the dispatcher sends as
// a null result.
func (s *server) Completion(ctx context.Context, params *lsp.CompletionParams) (*lsp.CompletionList, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		s.logger.Debug("completion for unknown document", "uri", string(params.TextDocument.URI))
		return nil, nil
	}

	word, ok := completion.WordRangeAt(doc.Text, params.Position)
	if !ok {
		return nil, nil
	}
	currentWord := word.Slice(doc.Lines()[word.Line])

	sess := s.snapshotSession()
	pool := s.candidatePool(sess)

	matches := s.matcher.Search(pool, currentWord)
	items := make([]lsp.CompletionItem, 0, len(matches))
	for _, m := range matches {
		cand := m.Candidate.Data.(completion.Candidate)
		insert := completion.InsertText(currentWord, cand.InsertText)
		if insert == "" {
			insert = cand.InsertText
		}
		items = append(items, lsp.CompletionItem{
			Label:         cand.Label,
			Kind:          cand.Kind,
			Documentation: cand.Documentation,
			InsertText:    insert,
			Data: &lsp.CompletionItemData{
				Matches: toMatchSpans(m.Spans),
				Range:   word.LSPRange(),
			},
		})
	}
	return &lsp.CompletionList{IsIncomplete: false, Items: items}, nil
}

// ResolveCompletionItem is advertised so clients may round-trip items, but
// everything worth sending is already on the initial list; the item comes
// back unchanged.
func (s *server) ResolveCompletionItem(ctx context.Context, item *lsp.CompletionItem) (*lsp.CompletionItem, error) {
	return item, nil
}

// candidatePool concatenates the candidates of every resolver the session
// activates, in scope order.
func (s *server) candidatePool(sess session) []fuzzy.Candidate {
	var pool []fuzzy.Candidate
	for _, scope := range sess.scopes {
		for _, cand := range s.resolveScope(scope, sess) {
			pool = append(pool, fuzzy.Candidate{Text: cand.Label, Data: cand})
		}
	}
	return pool
}

// resolveScope dispatches on the scope tag. A panicking resolver (the
// memory resolver is caller-supplied) degrades to an empty contribution
// from that scope instead of failing the whole request.
func (s *server) resolveScope(scope completion.Scope, sess session) (out []completion.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("completion resolver panicked", "scope", string(scope), "panic", r)
			out = nil
		}
	}()
	switch scope {
	case completion.ScopeExpressions:
		return completion.ExpressionCandidates()
	case completion.ScopeUserVariables:
		if sess.projectID == "" || s.memory == nil {
			return nil
		}
		return completion.UserVariableCandidates(s.memory(sess.projectID))
	case completion.ScopeVariableScopes:
		return completion.VariableScopeCandidates()
	}
	return nil
}

func toMatchSpans(spans []fuzzy.Span) []lsp.MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	out := make([]lsp.MatchSpan, len(spans))
	for i, sp := range spans {
		out[i] = lsp.MatchSpan{Start: sp.Start, End: sp.End}
	}
	return out
}
