package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty_body", input: "", want: "{}"},
		{name: "whitespace_only", input: " \n\t", want: "{}"},
		{name: "keeps_field_order", input: `{ "day": 6, "month": 1, "year": 2000 }`, want: `{"day":6,"month":1,"year":2000}`},
		{name: "nested", input: "{\n  \"lat\": 52.37,\n  \"opts\": [1, 2]\n}", want: `{"lat":52.37,"opts":[1,2]}`},
		{name: "invalid", input: `{"day":`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanonicalJSON([]byte(tc.input))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestBuildResponseKeyDeterministic(t *testing.T) {
	a, err := CanonicalJSON([]byte(`{"day": 6, "month": 1}`))
	require.NoError(t, err)
	b, err := CanonicalJSON([]byte(`{"day":6,"month":1}`))
	require.NoError(t, err)

	ka := BuildResponseKey("western_horoscope", a)
	kb := BuildResponseKey("western_horoscope", b)
	assert.Equal(t, ka.String(), kb.String())
	assert.Len(t, ka.Hash, 64)

	reordered, err := CanonicalJSON([]byte(`{"month":1,"day":6}`))
	require.NoError(t, err)
	assert.NotEqual(t, ka.String(), BuildResponseKey("western_horoscope", reordered).String())
	assert.NotEqual(t, ka.String(), BuildResponseKey("natal_chart", a).String())
}

func TestParseResponseKeyRoundTrip(t *testing.T) {
	k := BuildResponseKey("western_horoscope", []byte("{}"))

	parsed, ok := parseResponseKey(k.String())
	require.True(t, ok)
	assert.Equal(t, k, parsed)

	_, ok = parseResponseKey("exact:a:b:c:d")
	assert.False(t, ok)
}
