package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyFilter_EqualsDoesNotMutate(t *testing.T) {
	base := PropertyFilter{}.Equals(FieldReference, "A")
	withStreet := base.Equals(FieldStreet, "B")
	other := base.Equals(FieldStreet, "C")

	assert.Equal(t, []Condition{{FieldReference, "A"}}, base.Conditions())
	assert.Equal(t, []Condition{{FieldReference, "A"}, {FieldStreet, "B"}}, withStreet.Conditions())
	assert.Equal(t, []Condition{{FieldReference, "A"}, {FieldStreet, "C"}}, other.Conditions())
	assert.True(t, PropertyFilter{}.IsEmpty())
	assert.False(t, base.IsEmpty())
}

func TestPropertySummary_MarshalPassesRawThrough(t *testing.T) {
	withRaw := PropertySummary{Ref: "A", CodOffer: "1", Raw: json.RawMessage(`{"ref":"A","cod_ofer":1,"x":true}`)}
	out, err := json.Marshal([]PropertySummary{withRaw, {Ref: "B", CodOffer: "2"}})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"ref":"A","cod_ofer":1,"x":true},{"ref":"B","cod_ofer":"2"}]`, string(out))
}

func TestPropertyDetail_Marshal(t *testing.T) {
	out, err := json.Marshal(&PropertyDetail{Raw: json.RawMessage(`{"cod_ofer":55}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cod_ofer":55}`, string(out))

	out, err = json.Marshal(PropertyDetail{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("timeout")
	err := NewUpstreamError("search properties", cause)

	assert.EqualError(t, err, "search properties: timeout")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestErrorCategories(t *testing.T) {
	assert.ErrorIs(t, ErrMissingSearchParameter, ErrValidation)
	assert.ErrorIs(t, ErrMissingReference, ErrValidation)
	assert.ErrorIs(t, ErrPropertyNotFound, ErrNotFound)
}
