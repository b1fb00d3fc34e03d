package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is hashed into every key. Bump it when the cached Result
// layout changes so stale entries are never decoded.
const keyVersion = 1

// hashKey builds "kind:<sha256>" over the JSON encoding of the key
// version and parts.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(struct {
		V     int   `json:"v"`
		Parts []any `json:"parts"`
	}{keyVersion, parts})
	if err != nil {
		// parts are strings and plain structs.
		panic("cache: unencodable key part: " + err.Error())
	}
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
