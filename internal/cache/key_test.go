package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		params Params
		want   string
	}{
		{
			name: "no params is the url",
			url:  "https://www.nps.gov/index.htm",
			want: "https://www.nps.gov/index.htm",
		},
		{
			name:   "empty params is the url",
			url:    "https://www.nps.gov/index.htm",
			params: Params{},
			want:   "https://www.nps.gov/index.htm",
		},
		{
			name:   "single param",
			url:    "http://api.example.com/search",
			params: Params{{Key: "origin", Value: "49931"}},
			want:   "http://api.example.com/search_origin_49931",
		},
		{
			name: "params keep their order",
			url:  "http://www.mapquestapi.com/search/v2/radius",
			params: Params{
				{Key: "key", Value: "abc"},
				{Key: "origin", Value: "49931"},
				{Key: "radius", Value: "10"},
			},
			want: "http://www.mapquestapi.com/search/v2/radius_key_abc_origin_49931_radius_10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildKey(tt.url, tt.params))
		})
	}
}

func TestBuildKey_Deterministic(t *testing.T) {
	params := Params{{Key: "units", Value: "m"}, {Key: "maxMatches", Value: "10"}}

	first := BuildKey("http://api.example.com", params)
	second := BuildKey("http://api.example.com", Params{{Key: "units", Value: "m"}, {Key: "maxMatches", Value: "10"}})

	assert.Equal(t, first, second)
}

func TestBuildKey_OrderSensitive(t *testing.T) {
	a := BuildKey("u", Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}})
	b := BuildKey("u", Params{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}})

	assert.NotEqual(t, a, b)
}

// Separator collisions are a known property of the key format.
func TestBuildKey_SeparatorCollision(t *testing.T) {
	a := BuildKey("u", Params{{Key: "a", Value: "b_c"}})
	b := BuildKey("u", Params{{Key: "a_b", Value: "c"}})

	assert.Equal(t, a, b)
}

func TestParams_Values(t *testing.T) {
	params := Params{{Key: "origin", Value: "49931"}, {Key: "radius", Value: "10"}}

	values := params.Values()

	assert.Equal(t, "49931", values.Get("origin"))
	assert.Equal(t, "10", values.Get("radius"))
	assert.Equal(t, "origin=49931&radius=10", values.Encode())
}
