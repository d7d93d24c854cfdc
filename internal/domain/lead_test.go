package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Titles(t *testing.T) {
	c := SearchCriteria{
		TargetTitles: []string{" CMO ", "", "CMO", "  ", "VP Marketing"},
		MaxResults:   5,
	}.Normalize()

	assert.Equal(t, []string{"CMO", "VP Marketing"}, c.TargetTitles)
}

func TestNormalize_MaxResultsDefault(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, SearchCriteria{}.Normalize().MaxResults)
	assert.Equal(t, DefaultMaxResults, SearchCriteria{MaxResults: -3}.Normalize().MaxResults)
	assert.Equal(t, 1, SearchCriteria{MaxResults: 1}.Normalize().MaxResults)
}

func TestRawLead_TolerantDecoding(t *testing.T) {
	var r RawLead
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Ada","unknownField":123}`), &r))
	assert.Equal(t, "Ada", r.FullName)
	assert.Empty(t, r.Email)
}

func TestNewLead_TotalFields(t *testing.T) {
	l := NewLead(RawLead{FullName: "Ada"})

	assert.Equal(t, "Ada", l.FullName)
	assert.NotNil(t, l.Posts)

	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"posts":[]`)
	assert.Contains(t, string(b), `"email":""`, "absent fields coerce to empty strings")
}
