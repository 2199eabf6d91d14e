package goated

import (
	"encoding/json"
	"goatedvips/pkg/wager"
	"regexp"
	"strconv"
)

// The timeframe keys the upstream sometimes nests the data under.
var timeframeKeys = []string{"today", "weekly", "monthly", "all_time"}

// Matches the outermost JSON object or array inside free text.
var jsonBlockPattern = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)

// extractionStrategy is one shape the upstream response may take. Strategies
// are tried in priority order and the first that matches wins.
type extractionStrategy struct {
	name string
	fn   func(*APIResponse) ([]wager.Record, bool)
}

var strategies []extractionStrategy

// Assigned in init to break the initialization cycle between strategies,
// extractFromRawText and ExtractRecords.
func init() {
	strategies = []extractionStrategy{
		{"bare_array", extractBareArray},
		{"data_array", extractDataArray},
		{"nested_data_array", extractNestedDataArray},
		{"timeframe_merge", extractTimeframes},
		{"raw_text_recovery", extractFromRawText},
		{"longest_array", extractLongestArray},
		{"record_values", extractRecordValues},
	}
}

// ExtractRecords normalizes a raw API response into wager records. It never
// fails: when no strategy matches, an empty slice is returned and callers
// must treat that as "no data this cycle".
func ExtractRecords(resp *APIResponse) []wager.Record {
	if resp == nil {
		return nil
	}

	for _, strategy := range strategies {
		if records, ok := strategy.fn(resp); ok {
			return records
		}
	}

	return nil
}

// extractBareArray handles a response that is already the entries array.
func extractBareArray(resp *APIResponse) ([]wager.Record, bool) {
	entries, ok := resp.Data.([]any)
	if !ok {
		return nil, false
	}
	return mapEntries(entries), true
}

// extractDataArray handles {data: [...]}.
func extractDataArray(resp *APIResponse) ([]wager.Record, bool) {
	object, ok := resp.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	entries, ok := object["data"].([]any)
	if !ok {
		return nil, false
	}
	return mapEntries(entries), true
}

// extractNestedDataArray handles {data: {data: [...]}}.
func extractNestedDataArray(resp *APIResponse) ([]wager.Record, bool) {
	object, ok := resp.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	inner, ok := object["data"].(map[string]any)
	if !ok {
		return nil, false
	}

	entries, ok := inner["data"].([]any)
	if !ok {
		return nil, false
	}
	return mapEntries(entries), true
}

// extractTimeframes handles the per-timeframe shape, where each of today,
// weekly, monthly and all_time carries its own {data: [...]}. All timeframes
// are merged, deduplicating by uid with the first occurrence winning.
func extractTimeframes(resp *APIResponse) ([]wager.Record, bool) {
	root, ok := resp.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	// The timeframe objects may also sit one level down under data.
	candidates := []map[string]any{root}
	if inner, ok := root["data"].(map[string]any); ok {
		candidates = append(candidates, inner)
	}

	for _, object := range candidates {
		var merged []any
		matched := false
		for _, key := range timeframeKeys {
			timeframe, ok := object[key].(map[string]any)
			if !ok {
				continue
			}
			if entries, ok := timeframe["data"].([]any); ok {
				merged = append(merged, entries...)
				matched = true
			}
		}
		if matched {
			return mapEntries(merged), true
		}
	}

	return nil, false
}

// extractFromRawText recovers from an unparsable body by pulling the largest
// JSON block out of the text and re-running extraction on it.
func extractFromRawText(resp *APIResponse) ([]wager.Record, bool) {
	if !resp.ParseError || resp.RawText == "" {
		return nil, false
	}

	block := jsonBlockPattern.FindString(resp.RawText)
	if block == "" {
		return nil, false
	}

	var parsed any
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, false
	}

	return ExtractRecords(&APIResponse{Data: parsed}), true
}

// extractLongestArray scans object values for the longest array found.
func extractLongestArray(resp *APIResponse) ([]wager.Record, bool) {
	object, ok := resp.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	var longest []any
	for _, value := range object {
		if entries, ok := value.([]any); ok && len(entries) > len(longest) {
			longest = entries
		}
	}

	if longest == nil {
		return nil, false
	}
	return mapEntries(longest), true
}

// extractRecordValues treats object values that look like user records as
// the entries themselves.
func extractRecordValues(resp *APIResponse) ([]wager.Record, bool) {
	object, ok := resp.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	var entries []any
	for _, value := range object {
		entry, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if hasAnyKey(entry, "uid", "name", "wagered") {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return nil, false
	}
	return mapEntries(entries), true
}

// mapEntries converts raw entries into records, deduplicating by uid with
// the first occurrence winning and dropping entries lacking both uid and name.
func mapEntries(entries []any) []wager.Record {
	records := make([]wager.Record, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		object, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		record, ok := mapEntry(object)
		if !ok {
			continue
		}

		key := record.UID
		if key == "" {
			key = record.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		records = append(records, record)
	}

	return records
}

// mapEntry converts one raw entry, defaulting absent wager fields to zero.
func mapEntry(object map[string]any) (wager.Record, bool) {
	record := wager.Record{
		UID:  asString(object["uid"]),
		Name: asString(object["name"]),
	}

	if record.UID == "" && record.Name == "" {
		return wager.Record{}, false
	}

	// The wager fields live either under a wagered object or flat.
	fields := object
	if wagered, ok := object["wagered"].(map[string]any); ok {
		fields = wagered
	}

	record.Wagered = wager.Breakdown{
		Today:     asFloat(fields["today"]),
		ThisWeek:  asFloat(fields["this_week"]),
		ThisMonth: asFloat(fields["this_month"]),
		AllTime:   asFloat(fields["all_time"]),
	}

	return record, true
}

func hasAnyKey(object map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := object[key]; ok {
			return true
		}
	}
	return false
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
