package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Quantity Field[int]    `json:"quantity"`
	Notes    Field[string] `json:"notes"`
}

func TestField_DistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null}`), &p))

	assert.False(t, p.Quantity.Set)
	assert.Nil(t, p.Quantity.Ptr())

	assert.True(t, p.Notes.Set)
	assert.True(t, p.Notes.Null)
	_, ok := p.Notes.Get()
	assert.False(t, ok)
	assert.Nil(t, p.Notes.Ptr())
}

func TestField_Value(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 3, "notes": "stage left"}`), &p))

	q, ok := p.Quantity.Get()
	require.True(t, ok)
	assert.Equal(t, 3, q)
	assert.Equal(t, "stage left", *p.Notes.Ptr())
}

func TestField_TypeMismatch(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"quantity": "three"}`), &p)
	assert.Error(t, err)
}

func TestField_Marshal(t *testing.T) {
	out, err := json.Marshal(patch{Quantity: Of(2), Notes: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity": 2, "notes": null}`, string(out))
}
