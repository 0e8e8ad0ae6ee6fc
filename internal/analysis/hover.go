// Package analysis implements hover resolution over plain document text.
package analysis

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alloyconf/alloy-hover-lsp/internal/dictionary"
)

// HoverResult is a successful hover resolution: the documentation payload
// and the range of the raw token it was found under.
type HoverResult struct {
	Value string
	Range protocol.Range
}

// isWordByte reports whether c can appear inside a lookup key: ASCII
// letters, digits, underscore, or period. Periods keep dotted identifiers
// such as alloy.cast together as one key.
func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '.':
		return true
	}

	return false
}

// WordAt extracts the maximal run of word bytes containing or adjacent to
// the cursor column, plus at most one double quote hugging each side, so a
// documented string literal yields its raw quoted token. The returned word
// is the raw line slice; start and end are its half-open column bounds.
// A column past the end of the line scans backward from the end. The word
// is empty when the cursor sits between two non-word bytes.
func WordAt(line string, character protocol.UInteger) (string, protocol.UInteger, protocol.UInteger) {
	start := int(character)
	if start > len(line) {
		start = len(line)
	}
	end := start

	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}

	// A quote hugging the run joins the raw token; StripQuotes drops it
	// from the lookup key.
	if start > 0 && line[start-1] == '"' {
		start--
	}
	if end < len(line) && line[end] == '"' {
		end++
	}

	return line[start:end], protocol.UInteger(start), protocol.UInteger(end)
}

// StripQuotes removes one leading and one trailing double quote from word.
func StripQuotes(word string) string {
	word = strings.TrimPrefix(word, `"`)
	word = strings.TrimSuffix(word, `"`)

	return word
}

// ResolveHover resolves a hover query against text and dict. It returns
// nil when the line is out of range, no word surrounds the cursor, or the
// dictionary has no entry for the extracted key; none of these are errors.
// On a hit, the returned range covers the raw token as it appears in the
// source, including any quotes stripped from the lookup key.
func ResolveHover(text string, position protocol.Position, dict *dictionary.Dictionary) *HoverResult {
	line := lineAt(text, position.Line)

	word, start, end := WordAt(line, position.Character)

	key := StripQuotes(word)
	if key == "" {
		return nil
	}

	payload, ok := dict.Lookup(key)
	if !ok {
		return nil
	}

	return &HoverResult{
		Value: payload,
		Range: protocol.Range{
			Start: protocol.Position{Line: position.Line, Character: start},
			End:   protocol.Position{Line: position.Line, Character: end},
		},
	}
}

// lineAt returns the zero-based line of text, or an empty string when the
// index is out of range. A trailing carriage return is trimmed so CRLF
// documents scan the same as LF ones.
func lineAt(text string, line protocol.UInteger) string {
	lines := strings.Split(text, "\n")
	if int(line) >= len(lines) {
		return ""
	}

	return strings.TrimSuffix(lines[line], "\r")
}
