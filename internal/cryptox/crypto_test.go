package cryptox

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptFile_RoundTrip(t *testing.T) {
	t.Parallel()

	master := DeriveMasterKey([]byte("correct horse"), []byte("salt"))
	plain := []byte("hello encrypted world")

	ef, err := EncryptFile(master, plain)
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}
	if bytes.Contains(ef.Bytes, plain) {
		t.Fatal("ciphertext contains plaintext")
	}

	got, err := DecryptFile(master, ef.Envelope, ef.Bytes)
	if err != nil {
		t.Fatalf("DecryptFile error: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestDecryptFile_WrongMasterKey(t *testing.T) {
	t.Parallel()

	ef, err := EncryptFile(DeriveMasterKey([]byte("a"), []byte("s")), []byte("data"))
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}

	_, err = DecryptFile(DeriveMasterKey([]byte("b"), []byte("s")), ef.Envelope, ef.Bytes)
	if !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
}

func TestDecryptFile_Tampered(t *testing.T) {
	t.Parallel()

	master := DeriveMasterKey([]byte("a"), []byte("s"))
	ef, err := EncryptFile(master, []byte("data"))
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}
	ef.Bytes[len(ef.Bytes)-1] ^= 0xff

	if _, err := DecryptFile(master, ef.Envelope, ef.Bytes); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
	if _, err := DecryptFile(master, ef.Envelope, []byte{1, 2}); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for short object, got %v", err)
	}
}

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := DeriveMasterKey([]byte("pw"), []byte("salt"))
	b := DeriveMasterKey([]byte("pw"), []byte("salt"))
	c := DeriveMasterKey([]byte("pw"), []byte("other"))

	if len(a) != KeySize || !bytes.Equal(a, b) || bytes.Equal(a, c) {
		t.Fatal("master key derivation is not deterministic per salt")
	}
}

func TestUnwrapKey_BadEncoding(t *testing.T) {
	t.Parallel()

	_, err := UnwrapKey(make([]byte, KeySize), Envelope{KeyCipher: "!!", KeyNonce: "AAAA"})
	if !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
}
