package completion

import (
	"strings"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// WordRange identifies the token the cursor is inside or immediately after.
// Columns are a half-open [Start, End) range on the line.
type WordRange struct {
	Line  int32
	Start int32
	End   int32
}

// Slice extracts the word from its line.
func (r WordRange) Slice(line string) string {
	runes := []rune(line)
	if int(r.Start) > len(runes) || int(r.End) > len(runes) {
		return ""
	}
	return string(runes[r.Start:r.End])
}

// LSPRange converts the word range to a protocol range for the client to
// replace.
func (r WordRange) LSPRange() lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: r.Line, Character: r.Start},
		End:   lsp.Position{Line: r.Line, Character: r.End},
	}
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '/' || r == '-':
		return true
	}
	return false
}

// WordRangeAt scans the line under pos for contiguous word-character runs
// and returns the first run that contains the cursor or ends exactly at it.
// It reports false when the line is out of bounds or the cursor sits in
// whitespace with no word ending at it.
func WordRangeAt(text string, pos lsp.Position) (WordRange, bool) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if pos.Line < 0 || int(pos.Line) >= len(lines) {
		return WordRange{}, false
	}
	runes := []rune(lines[pos.Line])
	cursor := int(pos.Character)
	if cursor < 0 || cursor > len(runes) {
		return WordRange{}, false
	}

	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		// runs are scanned left to right, so the first candidate wins
		if start <= cursor && cursor <= i {
			return WordRange{Line: pos.Line, Start: int32(start), End: int32(i)}, true
		}
		if start > cursor {
			// cursor sits before this run, in whitespace
			return WordRange{}, false
		}
	}
	return WordRange{}, false
}

// InsertText reduces a matched label to the suffix worth inserting after
// what the user already typed. Both strings split on dots; the label loses
// one leading segment per segment the current word has, keeping at least the
// final segment so there is always something to insert. Typing "user"
// against the candidate "user.name" inserts "name" rather than repeating the
// prefix; the client appends it or replaces its own range.
func InsertText(currentWord, matchedLabel string) string {
	labelParts := strings.Split(matchedLabel, ".")
	wordParts := strings.Split(currentWord, ".")
	drop := len(wordParts)
	if drop > len(labelParts)-1 {
		drop = len(labelParts) - 1
	}
	return strings.Join(labelParts[drop:], ".")
}
