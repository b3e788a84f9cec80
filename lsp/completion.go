package lsp

type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

type CompletionContext struct {
	TriggerKind      int    `json:"triggerKind"`
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

type CompletionList struct {
	// IsIncomplete signals that further typing should recompute the list.
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type CompletionItem struct {
	// The label of this completion item. By default also the text that is
	// inserted when selecting this completion.
	Label string `json:"label"`
	// The kind of this completion item. Based on the kind an icon is chosen
	// by the editor.
	Kind CompletionItemKind `json:"kind,omitempty"`
	// A human-readable string that represents a doc-comment.
	Documentation string `json:"documentation,omitempty"`
	// A string that should be inserted into a document when selecting this
	// completion. When empty the label is used.
	InsertText string `json:"insertText,omitempty"`
	// Data is passed through to the client untouched; the Composer editors
	// use it for match highlighting and replacement ranges.
	Data *CompletionItemData `json:"data,omitempty"`
}

// CompletionItemData is the implementation-specific payload attached to each
// item: the label subranges that matched the query, and the token range the
// client should replace when the item is accepted.
type CompletionItemData struct {
	Matches []MatchSpan `json:"matches,omitempty"`
	Range   Range       `json:"range"`
}

// MatchSpan is a half-open [Start, End) index range within the item label.
type MatchSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type CompletionItemKind int

const (
	CompletionItemKindText          CompletionItemKind = 1
	CompletionItemKindMethod        CompletionItemKind = 2
	CompletionItemKindFunction      CompletionItemKind = 3
	CompletionItemKindConstructor   CompletionItemKind = 4
	CompletionItemKindField         CompletionItemKind = 5
	CompletionItemKindVariable      CompletionItemKind = 6
	CompletionItemKindClass         CompletionItemKind = 7
	CompletionItemKindInterface     CompletionItemKind = 8
	CompletionItemKindModule        CompletionItemKind = 9
	CompletionItemKindProperty      CompletionItemKind = 10
	CompletionItemKindUnit          CompletionItemKind = 11
	CompletionItemKindValue         CompletionItemKind = 12
	CompletionItemKindEnum          CompletionItemKind = 13
	CompletionItemKindKeyword       CompletionItemKind = 14
	CompletionItemKindSnippet       CompletionItemKind = 15
	CompletionItemKindFile          CompletionItemKind = 17
	CompletionItemKindReference     CompletionItemKind = 18
	CompletionItemKindEnumMember    CompletionItemKind = 20
	CompletionItemKindConstant      CompletionItemKind = 21
	CompletionItemKindStruct        CompletionItemKind = 22
	CompletionItemKindTypeParameter CompletionItemKind = 25
)
