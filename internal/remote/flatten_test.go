package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_NestedObjects(t *testing.T) {
	payload := json.RawMessage(`{
		"data": {
			"projectNodesImport": {
				"nodeID": "n1",
				"document": {"id": "d1", "info": {"title": "Plans"}}
			}
		}
	}`)

	flat, err := Flatten(payload)
	require.NoError(t, err)
	assert.Equal(t, "n1", flat["data__projectNodesImport__nodeID"])
	assert.Equal(t, "d1", flat["data__projectNodesImport__document__id"])
	assert.Equal(t, "Plans", flat["data__projectNodesImport__document__info__title"])
}

func TestFlatten_ArraysByIndex(t *testing.T) {
	flat, err := Flatten(json.RawMessage(`{"item":[{"id":"a"},{"id":"b"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "a", flat["item__0__id"])
	assert.Equal(t, "b", flat["item__1__id"])
}

func TestFlatten_ScalarRoot(t *testing.T) {
	flat, err := Flatten(json.RawMessage(`42`))
	require.NoError(t, err)
	assert.Equal(t, float64(42), flat["value"])
}

func TestFlatten_Malformed(t *testing.T) {
	_, err := Flatten(json.RawMessage(`{`))
	assert.Error(t, err)
}

func TestFlatKeys_Sorted(t *testing.T) {
	keys := FlatKeys(map[string]any{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
