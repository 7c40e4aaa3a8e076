package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gossh "golang.org/x/crypto/ssh"
)

func TestNewFormat(t *testing.T) {
	a, b := New(), New()
	if !strings.HasPrefix(a, "user_") {
		t.Errorf("id %q lacks prefix", a)
	}
	if a == b {
		t.Error("ids should be unique")
	}
}

func TestLoadOrCreateIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "player_id")

	first, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	second, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if first != second {
		t.Errorf("id rotated: %q then %q", first, second)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}
}

func TestLoadOrCreateKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player_id")
	if err := os.WriteFile(path, []byte("user_legacy\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	id, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if id != "user_legacy" {
		t.Errorf("id = %q", id)
	}
}

func TestLoadOrCreateReplacesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player_id")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	id, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("id = %q", id)
	}
}

func TestSSHIdentity(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := gossh.NewPublicKey(pub)
	if err != nil {
		t.Fatal(err)
	}

	id := ForSSHUser("alice", key)
	if !strings.HasPrefix(id, "ssh_") || strings.Contains(id, "SHA256:") {
		t.Errorf("id = %q", id)
	}
	if id != FromPublicKey(key) {
		t.Error("key-based id should not depend on user name")
	}

	anon1 := ForSSHUser("bob", nil)
	anon2 := ForSSHUser("bob", nil)
	if anon1 != anon2 || anon1 == ForSSHUser("carol", nil) {
		t.Errorf("name-based ids not stable: %q %q", anon1, anon2)
	}
}
