package lsp

type InitializeParams struct {
	ClientInfo            *ClientInfo           `json:"clientInfo"`
	RootURI               DocumentURI           `json:"rootUri"`
	InitializationOptions InitializationOptions `json:"initializationOptions"`
	// ... there's tons more that goes here
}

// InitializationOptions is the session configuration the Composer client
// sends along with the initialize request. Scopes gates which completion
// resolvers contribute; ProjectID keys the memory resolver and is only
// meaningful when the user-variables scope is active.
type InitializationOptions struct {
	Scopes    []string `json:"scopes"`
	ProjectID string   `json:"projectId,omitempty"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	// TextDocumentSync is 1 (full): every didChange carries the entire new
	// document text.
	TextDocumentSync   int                `json:"textDocumentSync"`
	CompletionProvider *CompletionOptions `json:"completionProvider,omitempty"`
}

type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializedParams struct{}
