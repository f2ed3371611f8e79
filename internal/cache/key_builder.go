package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const keyNamespace = "horoscope"

// ResponseKey identifies a cacheable upstream call.
type ResponseKey struct {
	Route string
	Hash  string // sha256 hex of the canonical request body
}

// String converts the structured key into the string used in Redis/map.
func (k ResponseKey) String() string {
	// horoscope:<ROUTE>:<HASH_HEX>
	return keyNamespace + ":" + k.Route + ":" + k.Hash
}

// CanonicalJSON returns the compact form of a JSON request body. Field order
// and values are kept as sent; only insignificant whitespace is removed, so
// identical documents always serialize to identical bytes. An empty body is
// treated as an empty object.
func CanonicalJSON(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("compact request body: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildResponseKey derives the key for route and an already canonical body.
func BuildResponseKey(route string, canonicalBody []byte) ResponseKey {
	route = strings.TrimSpace(route)

	sum := sha256.Sum256([]byte("route:" + route + "|body:" + string(canonicalBody)))

	return ResponseKey{
		Route: route,
		Hash:  hex.EncodeToString(sum[:]),
	}
}

// parseResponseKey is the inverse of ResponseKey.String.
func parseResponseKey(key string) (ResponseKey, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != keyNamespace {
		return ResponseKey{}, false
	}
	return ResponseKey{Route: parts[1], Hash: parts[2]}, true
}
