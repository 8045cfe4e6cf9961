// Package cryptox implements the client-side envelope encryption of files.
// Every file is sealed with its own random key; that key is sealed with the
// user's master key and travels with the file metadata as an envelope. The
// server only ever stores the envelope.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const KeySize = 32

var ErrDecrypt = errors.New("decryption failed")

// Envelope is a file key sealed with the master key, base64 encoded.
type Envelope struct {
	KeyCipher string
	KeyNonce  string
}

// DeriveMasterKey stretches a passphrase into an AES-256 key with Argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	s := sha256.Sum256(salt)
	return argon2.IDKey(password, s[:], 1, 64*1024, 4, KeySize)
}

// NewFileKey returns a random AES-256 key.
func NewFileKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal encrypts plaintext with AES-GCM under key and a fresh random nonce.
func Seal(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal. A wrong key, nonce or tampered ciphertext yields
// ErrDecrypt.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce size %d", ErrDecrypt, len(nonce))
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// WrapKey seals fileKey under masterKey.
func WrapKey(masterKey, fileKey []byte) (Envelope, error) {
	c, n, err := Seal(masterKey, fileKey)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		KeyCipher: base64.StdEncoding.EncodeToString(c),
		KeyNonce:  base64.StdEncoding.EncodeToString(n),
	}, nil
}

// UnwrapKey recovers the file key from an envelope.
func UnwrapKey(masterKey []byte, env Envelope) ([]byte, error) {
	c, err := base64.StdEncoding.DecodeString(env.KeyCipher)
	if err != nil {
		return nil, fmt.Errorf("%w: key cipher: %v", ErrDecrypt, err)
	}
	n, err := base64.StdEncoding.DecodeString(env.KeyNonce)
	if err != nil {
		return nil, fmt.Errorf("%w: key nonce: %v", ErrDecrypt, err)
	}
	return Open(masterKey, n, c)
}

// EncryptedFile is a file body sealed with its own key. Nonce is stored in
// front of the ciphertext in Bytes, so the uploaded object is
// self-contained apart from the envelope.
type EncryptedFile struct {
	Bytes    []byte
	Envelope Envelope
}

func EncryptFile(masterKey, plaintext []byte) (*EncryptedFile, error) {
	fileKey, err := NewFileKey()
	if err != nil {
		return nil, err
	}
	defer wipe(fileKey)

	ciphertext, nonce, err := Seal(fileKey, plaintext)
	if err != nil {
		return nil, err
	}

	env, err := WrapKey(masterKey, fileKey)
	if err != nil {
		return nil, err
	}

	return &EncryptedFile{Bytes: append(nonce, ciphertext...), Envelope: env}, nil
}

func DecryptFile(masterKey []byte, env Envelope, data []byte) ([]byte, error) {
	fileKey, err := UnwrapKey(masterKey, env)
	if err != nil {
		return nil, err
	}
	defer wipe(fileKey)

	aesgcm, err := newGCM(fileKey)
	if err != nil {
		return nil, err
	}
	if len(data) < aesgcm.NonceSize() {
		return nil, fmt.Errorf("%w: object too short", ErrDecrypt)
	}
	return Open(fileKey, data[:aesgcm.NonceSize()], data[aesgcm.NonceSize():])
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// wipe overwrites key material once it is no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
