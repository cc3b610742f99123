package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// saltedMarker is the 8-byte prefix OpenSSL writes ahead of the salt.
const saltedMarker = "Salted__"

// ErrEnvelopeFormat reports an envelope that cannot be decoded: bad base64,
// a missing Salted__ marker, truncated or misaligned ciphertext, or an
// out-of-range padding byte. The format carries no authentication, so a
// wrong password only surfaces as this error when it happens to corrupt
// the padding.
var ErrEnvelopeFormat = errors.New("malformed envelope")

// Encrypt seals plaintext under password and returns the text form of the
// legacy envelope: base64 of "Salted__" + 8 salt bytes + AES-256-CBC
// ciphertext. Every call draws a fresh salt from crypto/rand, so sealing
// the same plaintext twice never produces the same envelope.
func Encrypt(plaintext []byte, password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return encryptWithSalt(plaintext, []byte(password), salt)
}

func encryptWithSalt(plaintext, password, salt []byte) (string, error) {
	key, iv, err := DeriveKey(password, salt)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	// PKCS#7: a plaintext already on a block boundary still gains a full
	// block of padding. CryptoJS expects exactly that, so the pad length is
	// always 16 - len%16 with no special case for aligned input.
	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, 0, len(plaintext)+padLen)
	padded = append(padded, plaintext...)
	for i := 0; i < padLen; i++ {
		padded = append(padded, byte(padLen))
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	raw := make([]byte, 0, len(saltedMarker)+SaltSize+len(ciphertext))
	raw = append(raw, saltedMarker...)
	raw = append(raw, salt...)
	raw = append(raw, ciphertext...)

	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decrypt opens an envelope produced by Encrypt, or by any other client
// speaking the same format, and returns the plaintext. Structural problems
// are reported as ErrEnvelopeFormat; a wrong password that still decrypts
// to valid-looking padding yields garbage instead of an error.
func Decrypt(envelope, password string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrEnvelopeFormat, err)
	}
	if len(raw) < len(saltedMarker)+SaltSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the salted header", ErrEnvelopeFormat, len(raw))
	}
	if string(raw[:len(saltedMarker)]) != saltedMarker {
		return nil, fmt.Errorf("%w: missing %q marker", ErrEnvelopeFormat, saltedMarker)
	}

	salt := raw[len(saltedMarker) : len(saltedMarker)+SaltSize]
	ciphertext := raw[len(saltedMarker)+SaltSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d", ErrEnvelopeFormat, len(ciphertext), aes.BlockSize)
	}

	key, iv, err := DeriveKey([]byte(password), salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	// An unauthenticated format means the pad byte is attacker-controlled.
	// It must never be allowed to index outside the decrypted buffer.
	pad := int(plaintext[len(plaintext)-1])
	if pad < 1 || pad > aes.BlockSize || pad > len(plaintext) {
		return nil, fmt.Errorf("%w: padding byte %d out of range", ErrEnvelopeFormat, pad)
	}

	return plaintext[:len(plaintext)-pad], nil
}
