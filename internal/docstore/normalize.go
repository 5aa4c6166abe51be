package docstore

import (
	"encoding/json"
	"sort"
)

// normalizeCollection turns whatever shape the store returned into one
// canonical ordered list of records. The store serves a collection either
// as an array (possibly holding nulls where records were deleted) or as a
// map keyed by record id. A map-shaped record missing its own id field
// gets the map key spliced in, since that key is the record's identity.
// Anything that is neither shape is treated as an empty collection; the
// storefront degrades rather than fails on a malformed document.
func normalizeCollection(body []byte) []json.RawMessage {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}

	switch v := decoded.(type) {
	case []interface{}:
		records := make([]json.RawMessage, 0, len(v))
		for _, entry := range v {
			if entry == nil {
				continue
			}
			raw, err := json.Marshal(entry)
			if err != nil {
				continue
			}
			records = append(records, raw)
		}
		return records

	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		records := make([]json.RawMessage, 0, len(keys))
		for _, k := range keys {
			entry, ok := v[k].(map[string]interface{})
			if !ok || entry == nil {
				continue
			}
			if _, hasID := entry["id"]; !hasID {
				entry["id"] = k
			}
			raw, err := json.Marshal(entry)
			if err != nil {
				continue
			}
			records = append(records, raw)
		}
		return records

	default:
		return nil
	}
}
