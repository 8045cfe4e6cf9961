// Package cli implements the vaultctl commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/client/config"
	"github.com/dmitrijs2005/gophvault/internal/client/vault"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
)

var ErrUsage = errors.New("usage: vaultctl [flags] upload <path> [name] | download <name> <path> | delete <name> | token <owner> <secret> [ttl]")

// Vault is the subset of *vault.Client the commands use.
type Vault interface {
	Upload(ctx context.Context, name string, plaintext, masterKey []byte) error
	Download(ctx context.Context, name string, masterKey []byte) ([]byte, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// newVault is a seam for tests.
var newVault = func(cfg *config.Config) (Vault, error) {
	return vault.New(cfg)
}

type App struct {
	config *config.Config
	out    io.Writer
}

func NewApp(cfg *config.Config, out io.Writer) *App {
	return &App{config: cfg, out: out}
}

// Run executes one command described by args.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, args := args[0], args[1:]
	if cmd == "token" {
		return a.token(args)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	v, err := newVault(a.config)
	if err != nil {
		return err
	}
	defer v.Close()

	switch {
	case cmd == "upload" && (len(args) == 1 || len(args) == 2):
		return a.upload(ctx, v, args)
	case cmd == "download" && len(args) == 2:
		return a.download(ctx, v, args[0], args[1])
	case cmd == "delete" && len(args) == 1:
		if err := v.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted %s\n", args[0])
		return nil
	default:
		return ErrUsage
	}
}

func (a *App) masterKey() ([]byte, error) {
	pw, err := GetPassphrase(a.out)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	defer clear(pw)
	return cryptox.DeriveMasterKey(pw, []byte(a.config.KeySalt)), nil
}

func (a *App) upload(ctx context.Context, v Vault, args []string) error {
	path := args[0]
	name := filepath.Base(path)
	if len(args) == 2 {
		name = args[1]
	}

	plaintext, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	key, err := a.masterKey()
	if err != nil {
		return err
	}
	defer clear(key)

	if err := v.Upload(ctx, name, plaintext, key); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %s (%d bytes)\n", name, len(plaintext))
	return nil
}

func (a *App) download(ctx context.Context, v Vault, name, path string) error {
	key, err := a.masterKey()
	if err != nil {
		return err
	}
	defer clear(key)

	plaintext, err := v.Download(ctx, name, key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, plaintext, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "downloaded %s to %s\n", name, path)
	return nil
}

// token prints a development access token signed with the server secret.
func (a *App) token(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}

	ttl := 24 * time.Hour
	if len(args) == 3 {
		d, err := time.ParseDuration(args[2])
		if err != nil {
			return fmt.Errorf("ttl: %w", err)
		}
		ttl = d
	}

	tok, err := auth.GenerateToken(args[0], []byte(args[1]), ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, tok)
	return nil
}
