package protocol

import (
	"strings"
)

// RouteKind selects the handler for a parsed request
type RouteKind int

const (
	RouteHelp RouteKind = iota
	RouteSet
	RouteGet
)

// String returns the route name used in logs and metrics labels
func (k RouteKind) String() string {
	switch k {
	case RouteSet:
		return "set"
	case RouteGet:
		return "get"
	default:
		return "help"
	}
}

// routePrefixLen is the length of the "/set" and "/get" route prefixes;
// everything after it is the query-pairs suffix.
const routePrefixLen = 4

// Request is the parsed view of one request line. The method is kept but
// never used for routing.
type Request struct {
	Method string
	Route  string
}

// Pair is a key=value token extracted from a query suffix
type Pair struct {
	Key   string
	Value string
}

// ParseRequest splits a raw request buffer on whitespace and extracts the
// method and route tokens. It reports false when fewer than two tokens are
// present; the caller drops the connection without a response.
func ParseRequest(buf []byte) (Request, bool) {
	fields := strings.Fields(string(buf))
	if len(fields) < 2 {
		return Request{}, false
	}
	return Request{Method: fields[0], Route: fields[1]}, true
}

// Kind selects the handler by route prefix. Anything that is not /set or
// /get gets the help handler.
func (r Request) Kind() RouteKind {
	switch {
	case strings.HasPrefix(r.Route, "/set"):
		return RouteSet
	case strings.HasPrefix(r.Route, "/get"):
		return RouteGet
	default:
		return RouteHelp
	}
}

// PairSuffix returns the query portion of the route after the /set or /get
// prefix, or an empty string for routes with no suffix.
func (r Request) PairSuffix() string {
	if len(r.Route) <= routePrefixLen {
		return ""
	}
	return r.Route[routePrefixLen:]
}

// ParsePairs tokenizes a query suffix on '?' into pair candidates and each
// candidate on '=' into key and value tokens. Candidates that do not yield
// both a key and a value token are silently skipped; tokens beyond the
// first two are ignored.
func ParsePairs(suffix string) []Pair {
	var pairs []Pair
	for _, candidate := range splitNonEmpty(suffix, "?") {
		tokens := splitNonEmpty(candidate, "=")
		if len(tokens) < 2 {
			continue
		}
		pairs = append(pairs, Pair{Key: tokens[0], Value: tokens[1]})
	}
	return pairs
}

// splitNonEmpty splits s on sep and drops empty tokens, matching
// tokenizer semantics where consecutive separators collapse.
func splitNonEmpty(s, sep string) []string {
	var tokens []string
	for _, tok := range strings.Split(s, sep) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
