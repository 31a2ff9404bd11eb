package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

const saltSize = 32

// Algorithm names the digest applied to salt||password.
type Algorithm string

const (
	AlgorithmSHA256   Algorithm = "sha256"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// argon2id parameters (RFC 9106 second recommended option).
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// ParseAlgorithm maps a config value to an Algorithm. Unknown values fall back
// to sha256 so stored credentials keep verifying.
func ParseAlgorithm(s string) Algorithm {
	if Algorithm(strings.ToLower(strings.TrimSpace(s))) == AlgorithmArgon2id {
		return AlgorithmArgon2id
	}
	return AlgorithmSHA256
}

// CredentialHasher derives salted password digests. Salts and digests are
// standard base64.
type CredentialHasher struct {
	alg Algorithm
}

func NewCredentialHasher(alg Algorithm) *CredentialHasher {
	if alg != AlgorithmArgon2id {
		alg = AlgorithmSHA256
	}
	return &CredentialHasher{alg: alg}
}

// GenerateSalt returns 32 random bytes, base64 encoded.
func (h *CredentialHasher) GenerateSalt() (string, error) {
	b := make([]byte, saltSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Hash digests the raw salt bytes followed by the UTF-8 password.
func (h *CredentialHasher) Hash(password, salt string) (string, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("hash: %w: %v", domain.ErrMalformedSalt, err)
	}

	var sum []byte
	switch h.alg {
	case AlgorithmArgon2id:
		sum = argon2.IDKey([]byte(password), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	default:
		combined := make([]byte, 0, len(saltBytes)+len(password))
		combined = append(combined, saltBytes...)
		combined = append(combined, password...)
		d := sha256.Sum256(combined)
		sum = d[:]
	}
	return base64.StdEncoding.EncodeToString(sum), nil
}

// Verify reports whether password digests to digest under salt. A malformed
// salt is returned as an error rather than a mismatch.
func (h *CredentialHasher) Verify(password, digest, salt string) (bool, error) {
	got, err := h.Hash(password, salt)
	if err != nil {
		return false, err
	}
	return got == digest, nil
}
