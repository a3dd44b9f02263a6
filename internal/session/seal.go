package session

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const sealSaltLen = 16

// Sealer encrypts the token slot at rest with a passphrase-derived key.
type Sealer struct {
	passphrase []byte
}

// NewSealer builds a sealer for the given passphrase.
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, errors.New("empty passphrase")
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

// Seal encrypts plain, producing salt || nonce || ciphertext.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	salt := make([]byte, sealSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, sealSaltLen+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plain, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < sealSaltLen {
		return nil, errors.New("sealed token too short")
	}
	salt := sealed[:sealSaltLen]

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	rest := sealed[sealSaltLen:]
	if len(rest) < aead.NonceSize() {
		return nil, errors.New("sealed token too short")
	}
	nonce := rest[:aead.NonceSize()]
	plain, err := aead.Open(nil, nonce, rest[aead.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed token: %w", err)
	}
	return plain, nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.passphrase, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
