package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophvault/internal/client/config"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memVault struct {
	files  map[string][]byte
	keys   map[string][]byte
	closed bool
}

func (m *memVault) Upload(_ context.Context, name string, plaintext, key []byte) error {
	m.files[name] = plaintext
	m.keys[name] = append([]byte(nil), key...)
	return nil
}

func (m *memVault) Download(_ context.Context, name string, key []byte) ([]byte, error) {
	if !bytes.Equal(m.keys[name], key) {
		return nil, errors.New("wrong key")
	}
	return m.files[name], nil
}

func (m *memVault) Delete(_ context.Context, name string) error {
	delete(m.files, name)
	return nil
}

func (m *memVault) Close() error {
	m.closed = true
	return nil
}

func newTestApp(t *testing.T) (*App, *memVault, *bytes.Buffer) {
	t.Helper()

	mv := &memVault{files: map[string][]byte{}, keys: map[string][]byte{}}
	orig := newVault
	newVault = func(*config.Config) (Vault, error) { return mv, nil }
	t.Cleanup(func() { newVault = orig })

	t.Setenv(PassphraseEnv, "pw")

	cfg := &config.Config{}
	cfg.LoadDefaults()
	out := &bytes.Buffer{}
	return NewApp(cfg, out), mv, out
}

func TestUploadDownloadDelete(t *testing.T) {
	app, mv, out := newTestApp(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o600))

	require.NoError(t, app.Run(context.Background(), []string{"upload", src}))
	assert.Equal(t, []byte("hello"), mv.files["notes.txt"])
	assert.True(t, mv.closed)

	dst := filepath.Join(dir, "copy.txt")
	require.NoError(t, app.Run(context.Background(), []string{"download", "notes.txt", dst}))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	require.NoError(t, app.Run(context.Background(), []string{"delete", "notes.txt"}))
	assert.NotContains(t, mv.files, "notes.txt")
	assert.Contains(t, out.String(), "deleted notes.txt")
}

func TestUploadWithExplicitName(t *testing.T) {
	app, mv, _ := newTestApp(t)
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	require.NoError(t, app.Run(context.Background(), []string{"upload", src, "docs/a.txt"}))
	assert.Contains(t, mv.files, "docs/a.txt")
}

func TestUsageErrors(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"download", "only-name"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"token", "owner"}), ErrUsage)
}

func TestTokenCommand(t *testing.T) {
	app, _, out := newTestApp(t)

	require.NoError(t, app.Run(context.Background(), []string{"token", "u1", "secret", "1h"}))

	owner, err := auth.GetOwnerIDFromToken(strings.TrimSpace(out.String()), []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)
}

func TestGetPassphrase_Prompt(t *testing.T) {
	t.Setenv(PassphraseEnv, "")
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassphrase(&out)
	require.NoError(t, err)
	assert.Equal(t, "typed", string(pw))
	assert.Contains(t, out.String(), "Enter passphrase")
}

func TestTokenCommand_BadTTL(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Run(context.Background(), []string{"token", "u1", "secret", "soon"})
	require.Error(t, err)
}
