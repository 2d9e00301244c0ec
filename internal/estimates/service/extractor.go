package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"estimate_backend/platform/apperr"
)

// fencedBlockRegex captures the interior of a fenced code block, with or
// without a language tag.
var fencedBlockRegex = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")

// Extraction is the tagged outcome of parsing generation output. Strategy
// records which fallback succeeded, for observability.
type Extraction struct {
	Items    []CostItem
	Strategy string
}

type rawEstimate struct {
	Items json.RawMessage `json:"items"`
}

// ExtractItems recovers a structured item list from raw generation text.
// Strategies are applied in order, stopping at the first success:
//  1. parse the trimmed whole text
//  2. parse the interior of a fenced code block
//  3. parse the substring from the first '{' to the last '}'
//
// Generation output is not guaranteed to be bare JSON despite instruction;
// these three absorb the common deviations (code fences, surrounding prose)
// without a tolerant parser. If none succeed the result is a typed
// unparsable-response error; no exception crosses this boundary.
func ExtractItems(raw string) (Extraction, error) {
	trimmed := strings.TrimSpace(raw)

	if items, ok := decodeItems(trimmed); ok {
		return Extraction{Items: items, Strategy: "direct"}, nil
	}

	if match := fencedBlockRegex.FindStringSubmatch(trimmed); match != nil {
		if items, ok := decodeItems(strings.TrimSpace(match[1])); ok {
			return Extraction{Items: items, Strategy: "fenced-block"}, nil
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if items, ok := decodeItems(trimmed[start : end+1]); ok {
			return Extraction{Items: items, Strategy: "brace-substring"}, nil
		}
	}

	return Extraction{}, apperr.Unparsable("generation output could not be parsed as an item list")
}

// decodeItems parses candidate JSON and requires an object whose "items"
// field is present and is a list.
func decodeItems(candidate string) ([]CostItem, bool) {
	var envelope rawEstimate
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, false
	}
	itemsRaw := bytes.TrimSpace(envelope.Items)
	if len(itemsRaw) == 0 || itemsRaw[0] != '[' {
		return nil, false
	}
	var items []CostItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, false
	}
	return items, true
}
