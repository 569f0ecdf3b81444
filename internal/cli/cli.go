// Package cli implements peselgen's command-line subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"golang.org/x/term"

	"github.com/Sidolux/pesel-generator/internal/record"
)

// DataDir returns the default data directory for peselgen.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/peselgen"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".peselgen"
	}
	return home + "/.local/share/peselgen"
}

// ReadPassword prompts for a password on stderr and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("vault password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the vault has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenVault prompts for a password and opens the vault, returning both
// the store and the saved-records collection.
func OpenVault(dir string) (*zstore.Store, *zstore.Collection[record.Record], error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("vault password: ", os.Stderr)
	}
	if err != nil {
		return nil, nil, err
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	s, err := zstore.Open(fsys, []byte(pass))
	if err != nil {
		return nil, nil, err
	}

	col, err := zstore.NewCollection[record.Record](s, "records")
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return s, col, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "peselgen: encode json: %v\n", err)
		os.Exit(1)
	}
}
