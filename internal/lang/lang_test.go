package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultAlphabet(t *testing.T) {
	a := Default()
	if a.Len() != 36 {
		t.Fatalf("expected 36 characters, got %d", a.Len())
	}
	id, ok := a.ID('a')
	if !ok || id != 0 {
		t.Fatalf("expected 'a' at id 0, got %d ok=%v", id, ok)
	}
	if _, ok := a.ID('T'); !ok {
		t.Fatalf("expected uppercase to fold into the alphabet")
	}
	if _, ok := a.ID('!'); ok {
		t.Fatalf("expected '!' to be unmapped")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	if _, err := New("abca"); err == nil {
		t.Fatalf("expected duplicate character error")
	}
	if _, err := New(""); err == nil {
		t.Fatalf("expected empty alphabet error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alphabet.txt")
	if err := os.WriteFile(path, []byte("\nabcde\n"), 0o644); err != nil {
		t.Fatalf("write alphabet: %v", err)
	}
	a, err := Load(path)
	if err != nil {
		t.Fatalf("load alphabet: %v", err)
	}
	if a.Len() != 5 {
		t.Fatalf("expected 5 characters, got %d", a.Len())
	}
	if a.Rune(4) != 'e' {
		t.Fatalf("expected 'e' at id 4, got %q", a.Rune(4))
	}
}
