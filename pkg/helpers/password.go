package helpers

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

var hashFuncs = map[string]func() hash.Hash{
	"sha1":     sha1.New,
	"sha224":   sha256.New224,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3-256": sha3.New256,
	"sha3-512": sha3.New512,
}

// PasswordHasher derives PBKDF2-HMAC digests encoded as hex(salt) + Sep + hex(digest).
type PasswordHasher struct {
	newHash    func() hash.Hash
	iterations int
	saltSize   int
	sep        string
}

func NewPasswordHasher(hashName string, iterations, saltSize int, sep string) (*PasswordHasher, error) {
	h, ok := hashFuncs[hashName]
	if !ok {
		return nil, fmt.Errorf("unsupported hash %q", hashName)
	}
	if iterations <= 0 || saltSize <= 0 {
		return nil, fmt.Errorf("iterations and salt size must be positive")
	}
	if sep == "" || strings.ContainsAny(sep, "0123456789abcdefABCDEF") {
		return nil, fmt.Errorf("invalid separator %q", sep)
	}
	return &PasswordHasher{newHash: h, iterations: iterations, saltSize: saltSize, sep: sep}, nil
}

// Hash returns a freshly salted encoding of password.
func (p *PasswordHasher) Hash(password string) (string, error) {
	return p.HashBytes([]byte(password))
}

func (p *PasswordHasher) HashBytes(password []byte) (string, error) {
	salt := make([]byte, p.saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(salt) + p.sep + hex.EncodeToString(p.derive(password, salt)), nil
}

// Verify reports whether password matches encoded. Malformed encodings never match.
func (p *PasswordHasher) Verify(password, encoded string) bool {
	return p.VerifyBytes([]byte(password), encoded)
}

func (p *PasswordHasher) VerifyBytes(password []byte, encoded string) bool {
	parts := strings.Split(encoded, p.sep)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil || len(want) != p.newHash().Size() {
		return false
	}
	return subtle.ConstantTimeCompare(p.derive(password, salt), want) == 1
}

func (p *PasswordHasher) derive(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, p.iterations, p.newHash().Size(), p.newHash)
}
