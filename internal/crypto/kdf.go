// Package crypto implements the client-side cryptography for hushfile: the
// OpenSSL-compatible salted envelope, its key derivation, and generation of
// the random passwords that end up in share URLs. Envelopes must stay
// byte-compatible with CryptoJS.AES and `openssl enc -aes-256-cbc -salt`,
// so none of the primitives here are negotiable.
package crypto

import (
	"crypto/md5" // #nosec G501: fixed by the legacy envelope format
	"fmt"
)

const (
	// SaltSize is the number of random salt bytes carried in every envelope.
	SaltSize = 8

	keyLen = 32
	ivLen  = 16
)

// DeriveKey stretches a password and an 8-byte salt into an AES-256 key and
// a CBC initialization vector using OpenSSL's EVP_BytesToKey with a single
// MD5 round per block: the digest buffer starts empty, each round appends
// MD5(previous || password || salt), and rounds repeat until 48 bytes are
// available. The first 32 become the key, the next 16 the IV. Identical
// inputs always yield identical output.
func DeriveKey(password, salt []byte) (key, iv []byte, err error) {
	if len(salt) != SaltSize {
		return nil, nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	var derived, block []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New() // #nosec G401: fixed by the legacy envelope format
		h.Write(block)
		h.Write(password)
		h.Write(salt)
		block = h.Sum(nil)
		derived = append(derived, block...)
	}

	return derived[:keyLen], derived[keyLen : keyLen+ivLen], nil
}
