package completion

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/tidwall/gjson"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// The built-in expression catalog is an external, versioned table of the
// expression language's prebuilt functions. It is compiled in and read once
// at first use; the server only ever reads it.
//
//go:embed catalog.json
var catalogData []byte

var (
	catalogOnce    sync.Once
	catalogVersion string
	catalogEntries []Candidate
)

func loadCatalog() {
	contract.Assertf(gjson.ValidBytes(catalogData), "embedded expression catalog is not valid JSON")
	doc := gjson.ParseBytes(catalogData)
	catalogVersion = doc.Get("version").String()
	doc.Get("functions").ForEach(func(_, fn gjson.Result) bool {
		name := fn.Get("name").String()
		params := fn.Get("params").Array()
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = stripTypeAnnotation(p.String())
		}
		catalogEntries = append(catalogEntries, Candidate{
			Label:         name,
			Kind:          lsp.CompletionItemKindFunction,
			InsertText:    fmt.Sprintf("%s(%s)", name, strings.Join(names, ", ")),
			Documentation: fn.Get("description").String(),
		})
		return true
	})
	contract.Assertf(len(catalogEntries) > 0, "embedded expression catalog has no functions")
}

// stripTypeAnnotation reduces "timestamp: string" or "format?: string" to
// the bare parameter name.
func stripTypeAnnotation(param string) string {
	name, _, _ := strings.Cut(param, ":")
	name = strings.TrimSpace(name)
	return strings.TrimSuffix(name, "?")
}

// CatalogVersion reports the version tag of the embedded catalog.
func CatalogVersion() string {
	catalogOnce.Do(loadCatalog)
	return catalogVersion
}

func catalogCandidates() []Candidate {
	catalogOnce.Do(loadCatalog)
	return catalogEntries
}
