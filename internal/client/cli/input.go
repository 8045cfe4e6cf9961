package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// PassphraseEnv, when set, is used instead of prompting.
const PassphraseEnv = "GOPHVAULT_PASSPHRASE"

// GetPassphrase returns the passphrase from the environment or reads it
// from the terminal without echo. The caller should wipe the result.
func GetPassphrase(w io.Writer) ([]byte, error) {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return []byte(p), nil
	}

	if _, err := fmt.Fprint(w, "Enter passphrase: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
