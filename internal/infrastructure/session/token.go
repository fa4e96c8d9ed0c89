// Package session implements the session authorities that bind a browser's
// token to a username: server-side in Redis, signed client-side as a JWT, or
// in process memory.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the entropy of an opaque session token (64 hex chars).
const TokenBytes = 32

// GenerateToken creates a random opaque token and the hash used to store it.
// Only the hash is persisted; the plaintext goes to the client.
func GenerateToken() (token, hash string, err error) {
	b := make([]byte, TokenBytes)
	if _, err = rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate session token: %w", err)
	}
	token = hex.EncodeToString(b)
	return token, HashToken(token), nil
}

// HashToken computes the SHA-256 hex digest of a token.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
