// Package cryptox hashes and verifies stored passwords.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported schemes for NewHasher.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

// ErrUnknownScheme is returned by NewHasher for unsupported names.
var ErrUnknownScheme = errors.New("unknown password scheme")

// Hasher turns a password into its stored form and checks candidates
// against that form.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(encoded string, password []byte) bool
}

func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case SchemeArgon2id:
		return Argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	return string(b), err
}

func (h BcryptHasher) Verify(encoded string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), password) == nil
}

// argon2id parameters for new hashes. Verify reads them back from the
// encoded value.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	// Upper bounds for parameters read back from stored hashes.
	argonMaxMemory = 1024 * 1024
	argonMaxTime   = 16
	argonMaxKeyLen = 128
)

// Argon2Hasher stores passwords in the PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(password []byte) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := deriveKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (Argon2Hasher) Verify(encoded string, password []byte) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if time == 0 || time > argonMaxTime || threads == 0 || memory > argonMaxMemory {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > argonMaxKeyLen {
		return false
	}

	got := deriveKey(password, salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func deriveKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}
