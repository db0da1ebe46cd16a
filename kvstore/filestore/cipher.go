package filestore

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "member-client storage v1"

// Cipher seals the storage document before it is written to disk.
type Cipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// NoopCipher stores the document as plain JSON.
type NoopCipher struct{}

func (NoopCipher) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (NoopCipher) Open(sealed []byte) ([]byte, error)    { return sealed, nil }

type XChaChaCipher struct {
	aead cipher.AEAD
}

// NewXChaChaCipher derives a 256-bit key from secret with HKDF-SHA256.
func NewXChaChaCipher(secret string) (*XChaChaCipher, error) {
	if secret == "" {
		return nil, errors.Wrapf(errors.ErrEncryption, "empty storage secret")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Wrapf(errors.ErrEncryption, "deriving key: %v", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEncryption, "creating aead: %v", err)
	}
	return &XChaChaCipher{aead: aead}, nil
}

// Seal returns nonce || ciphertext || tag
func (c *XChaChaCipher) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrapf(errors.ErrEncryption, "generating nonce: %v", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *XChaChaCipher) Open(sealed []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, errors.Wrapf(errors.ErrEncryption, "ciphertext too short")
	}

	plaintext, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEncryption, "decrypting: %v", err)
	}
	return plaintext, nil
}
