package handlers

import (
	"fmt"
	"strings"

	"github.com/neogan74/kvd/internal/metrics"
	"github.com/neogan74/kvd/internal/protocol"
	"github.com/neogan74/kvd/internal/store"
)

// ResponsePreamble is the fixed response header written before every body.
// All responses are 200; the outcome is communicated through body text only.
const ResponsePreamble = "HTTP/1.1 200 OK\r\n" +
	"Connection: close\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n"

// Bodies for requests that carried no usable pairs. No trailing newline.
const (
	NoPairsBody = "No correct key-value pairs have been provided."
	NoKeysBody  = "No keys have been requested."
)

const helpBody = `This server stores string keys and values.

Routes:
  /set?<key>=<value>[?<key>=<value>...]
      Stores each key-value pair. Existing keys are overwritten.
  /get?key=<key>[?key=<key>...]
      Looks up each requested key and reports its value.

Any other route prints this message.
`

// KVHandler interprets parsed requests against the store and produces
// plain-text response bodies.
type KVHandler struct {
	store *store.KVStore
}

func NewKVHandler(kvStore *store.KVStore) *KVHandler {
	return &KVHandler{store: kvStore}
}

// Set stores every parsed pair and reports one line per pair, in input
// order. With no valid pairs the body is the fixed no-pairs line.
func (h *KVHandler) Set(pairs []protocol.Pair) string {
	if len(pairs) == 0 {
		metrics.KVOperationsTotal.WithLabelValues("set", "no_pairs").Inc()
		return NoPairsBody
	}

	var b strings.Builder
	for _, p := range pairs {
		h.store.Set(p.Key, p.Value)
		fmt.Fprintf(&b, "The value of the key \"%s\" has been set to \"%s\".\n", p.Key, p.Value)
		metrics.KVOperationsTotal.WithLabelValues("set", "success").Inc()
	}
	return b.String()
}

// Get looks up the value token of every pair whose key token is the literal
// option name "key"; other pairs are ignored without being counted. With no
// counted pairs the body is the fixed no-keys line.
func (h *KVHandler) Get(pairs []protocol.Pair) string {
	var b strings.Builder
	requested := 0

	for _, p := range pairs {
		if p.Key != "key" {
			continue
		}
		requested++

		value, ok := h.store.Get(p.Value)
		if ok {
			fmt.Fprintf(&b, "The key \"%s\" has the value \"%s\".\n", p.Value, value)
			metrics.KVOperationsTotal.WithLabelValues("get", "success").Inc()
		} else {
			fmt.Fprintf(&b, "The key \"%s\" doesn't have any value.\n", p.Value)
			metrics.KVOperationsTotal.WithLabelValues("get", "not_found").Inc()
		}
	}

	if requested == 0 {
		metrics.KVOperationsTotal.WithLabelValues("get", "no_keys").Inc()
		return NoKeysBody
	}
	return b.String()
}

// Help returns the static usage message. No store access.
func (h *KVHandler) Help() string {
	return helpBody
}
