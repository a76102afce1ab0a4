package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		method string
		route  string
		ok     bool
	}{
		{"full request line", "GET /set?a=1 HTTP/1.1\r\nHost: x\r\n\r\n", "GET", "/set?a=1", true},
		{"method and route only", "GET /get?key=a", "GET", "/get?key=a", true},
		{"arbitrary method accepted", "BANANA /set?a=1", "BANANA", "/set?a=1", true},
		{"single token", "GET", "", "", false},
		{"empty input", "", "", "", false},
		{"whitespace only", "   \r\n  ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := ParseRequest([]byte(tt.input))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.method, req.Method)
				assert.Equal(t, tt.route, req.Route)
			}
		})
	}
}

func TestRequest_Kind(t *testing.T) {
	tests := []struct {
		route string
		kind  RouteKind
	}{
		{"/set?a=1", RouteSet},
		{"/set", RouteSet},
		{"/settle", RouteSet}, // prefix match only, by contract
		{"/get?key=a", RouteGet},
		{"/get", RouteGet},
		{"/", RouteHelp},
		{"/help", RouteHelp},
		{"/delete?a=1", RouteHelp},
		{"", RouteHelp},
	}

	for _, tt := range tests {
		req := Request{Method: "GET", Route: tt.route}
		assert.Equal(t, tt.kind, req.Kind(), "route %q", tt.route)
	}
}

func TestRequest_PairSuffix(t *testing.T) {
	assert.Equal(t, "?a=1?b=2", Request{Route: "/set?a=1?b=2"}.PairSuffix())
	assert.Equal(t, "", Request{Route: "/set"}.PairSuffix())
	assert.Equal(t, "", Request{Route: "/get"}.PairSuffix())
	assert.Equal(t, "?key=a", Request{Route: "/get?key=a"}.PairSuffix())
}

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		pairs  []Pair
	}{
		{
			name:   "two pairs in order",
			suffix: "?a=1?b=2",
			pairs:  []Pair{{"a", "1"}, {"b", "2"}},
		},
		{
			name:   "single pair",
			suffix: "?key=value",
			pairs:  []Pair{{"key", "value"}},
		},
		{
			name:   "empty suffix",
			suffix: "",
			pairs:  nil,
		},
		{
			name:   "pair without equals skipped",
			suffix: "?justakey",
			pairs:  nil,
		},
		{
			name:   "missing value skipped",
			suffix: "?a=",
			pairs:  nil,
		},
		{
			name:   "missing key skipped",
			suffix: "?=1",
			pairs:  nil,
		},
		{
			name:   "invalid pair between valid ones",
			suffix: "?a=1?broken?b=2",
			pairs:  []Pair{{"a", "1"}, {"b", "2"}},
		},
		{
			name:   "extra equals tokens ignored",
			suffix: "?a=b=c",
			pairs:  []Pair{{"a", "b"}},
		},
		{
			name:   "consecutive separators collapse",
			suffix: "??a=1??",
			pairs:  []Pair{{"a", "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pairs, ParsePairs(tt.suffix))
		})
	}
}

func TestRouteKind_String(t *testing.T) {
	assert.Equal(t, "set", RouteSet.String())
	assert.Equal(t, "get", RouteGet.String())
	assert.Equal(t, "help", RouteHelp.String())
}
