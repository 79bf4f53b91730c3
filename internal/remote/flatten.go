package remote

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Flatten converts a nested JSON payload into a flat record whose keys join
// nested object paths with "__", e.g. data__projectNodesImport__nodeID.
// Array elements are addressed by index. Scalars pass through unchanged.
func Flatten(payload json.RawMessage) (map[string]any, error) {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}

	flat := make(map[string]any)
	flattenInto(flat, "", value)
	return flat, nil
}

// FlattenValue is Flatten for an already-decoded value.
func FlattenValue(value any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", value)
	return flat
}

// FlatKeys returns the sorted key set of a flat record, for stable output.
func FlatKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flattenInto(flat map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			flattenInto(flat, joinKey(prefix, key), child)
		}
	case []any:
		for i, child := range v {
			flattenInto(flat, joinKey(prefix, strconv.Itoa(i)), child)
		}
	default:
		if prefix == "" {
			prefix = "value"
		}
		flat[prefix] = v
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "__" + key
}
