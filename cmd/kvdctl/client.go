package main

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const dialTimeout = 5 * time.Second

// Client speaks the kvd wire protocol: one request line per TCP connection,
// the server answers with a fixed HTTP-style preamble followed by a plain
// text body and closes the connection.
type Client struct {
	Addr string
}

func NewClient(addr string) *Client {
	return &Client{Addr: addr}
}

// Do sends a single request for the given route and returns the response
// body with the preamble stripped.
func (c *Client) Do(route string) (string, error) {
	conn, err := net.DialTimeout("tcp", c.Addr, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", c.Addr, err)
	}
	defer conn.Close()

	request := fmt.Sprintf("GET %s HTTP/1.1\r\n\r\n", route)
	if _, err := conn.Write([]byte(request)); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(dialTimeout))
	raw, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("connection dropped by server")
	}

	_, body, found := strings.Cut(string(raw), "\r\n\r\n")
	if !found {
		return "", fmt.Errorf("malformed response: %q", string(raw))
	}
	return body, nil
}

// Pair is one key-value pair for a set request.
type Pair struct {
	Key   string
	Value string
}

// Set stores the given key-value pairs in one request, preserving order.
func (c *Client) Set(pairs []Pair) (string, error) {
	var sb strings.Builder
	sb.WriteString("/set")
	for _, pair := range pairs {
		sb.WriteByte('?')
		sb.WriteString(pair.Key)
		sb.WriteByte('=')
		sb.WriteString(pair.Value)
	}
	return c.Do(sb.String())
}

// Get queries the given keys in one request.
func (c *Client) Get(keys []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("/get")
	for _, key := range keys {
		sb.WriteString("?key=")
		sb.WriteString(key)
	}
	return c.Do(sb.String())
}

// Help requests the route listing.
func (c *Client) Help() (string, error) {
	return c.Do("/")
}

// ValidateToken rejects tokens that the wire protocol cannot carry: the
// request line is split on whitespace and pairs on '?' and '='.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if strings.ContainsAny(token, " \t\r\n?=") {
		return fmt.Errorf("token %q contains characters the protocol cannot carry", token)
	}
	return nil
}
