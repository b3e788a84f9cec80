package lsp

// DocumentURI is the opaque resource identifier for an open text document.
// The editor webview hands out in-memory scheme URIs, so the server never
// interprets it as a filesystem path.
type DocumentURI string

type LanguageKind string

type TextDocumentItem struct {
	URI        DocumentURI  `json:"uri"`
	LanguageID LanguageKind `json:"languageId"`
	Version    int32        `json:"version"`
	Text       string       `json:"text"`
}

type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int32 `json:"version"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Position struct {
	Line      int32 `json:"line"`
	Character int32 `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}
