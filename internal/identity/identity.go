// Package identity manages the opaque player identifier. A local device
// keeps one id in a file, created on first launch and never rotated; SSH
// players are identified by their public key.
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
)

const prefix = "user_"

// sshNamespace scopes name-based ids for SSH users without a key.
var sshNamespace = uuid.MustParse("8f5b8a3e-4d7c-4a57-9c11-6f1f1c1e2a90")

// New generates a fresh player identifier.
func New() string {
	return prefix + uuid.New().String()
}

// LoadOrCreate returns the identifier stored at path, creating the file
// with a new identifier if it does not exist or is empty.
func LoadOrCreate(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("identity: read %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("identity: create directory: %w", err)
	}
	id := New()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("identity: write %s: %w", path, err)
	}
	return id, nil
}

// FromPublicKey derives a stable identifier from an SSH public key.
func FromPublicKey(key gossh.PublicKey) string {
	fp := strings.TrimPrefix(gossh.FingerprintSHA256(key), "SHA256:")
	return "ssh_" + fp
}

// ForSSHUser identifies an SSH session by key, falling back to a
// name-based id when the client offered no key.
func ForSSHUser(user string, key gossh.PublicKey) string {
	if key != nil {
		return FromPublicKey(key)
	}
	return "ssh_" + uuid.NewSHA1(sshNamespace, []byte(user)).String()
}
