package session

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const saltLen = 16

// FileStore keeps the token in a single file, sealed with a key derived from
// the device secret. The mobile client kept it in the platform secure store;
// an encrypted file is the terminal equivalent.
type FileStore struct {
	path   string
	secret []byte
}

func NewFileStore(path string, deviceSecret string) *FileStore {
	return &FileStore{path: path, secret: []byte(deviceSecret)}
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	token, err := s.open(data)
	if err != nil {
		// An unreadable token file is treated as logged out rather than a
		// hard failure; the user can always re-login.
		return "", nil
	}
	return token, nil
}

func (s *FileStore) Save(token string) error {
	sealed, err := s.seal([]byte(token))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, sealed, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Layout on disk: salt || nonce || ciphertext.
func (s *FileStore) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := append(salt, nonce...)
	return aead.Seal(out, nonce, plain, nil), nil
}

func (s *FileStore) open(data []byte) (string, error) {
	if len(data) < saltLen {
		return "", fmt.Errorf("token file too short")
	}
	salt := data[:saltLen]
	aead, err := s.aead(salt)
	if err != nil {
		return "", err
	}
	rest := data[saltLen:]
	if len(rest) < aead.NonceSize() {
		return "", fmt.Errorf("token file too short")
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (s *FileStore) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}
