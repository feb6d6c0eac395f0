package checksum

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	return path
}

func TestFile(t *testing.T) {
	a := writeTemp(t, "Issue key,Summary\nQA-1,LN-C1\n")
	b := writeTemp(t, "Issue key,Summary\nQA-1,LN-C1\n")
	c := writeTemp(t, "Issue key,Summary\nQA-2,LN-R1\n")

	sumA, err := File(a)
	if err != nil {
		t.Fatalf("File returned unexpected error: %v", err)
	}

	sumB, err := File(b)
	if err != nil {
		t.Fatalf("File returned unexpected error: %v", err)
	}

	if sumA != sumB {
		t.Errorf("identical content produced different checksums: %s vs %s", sumA, sumB)
	}

	sumC, err := File(c)
	if err != nil {
		t.Fatalf("File returned unexpected error: %v", err)
	}

	if sumA == sumC {
		t.Error("different content produced identical checksums")
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSHA256(t *testing.T) {
	path := writeTemp(t, "hello")

	sum, err := FileSHA256(path)
	if err != nil {
		t.Fatalf("FileSHA256 returned unexpected error: %v", err)
	}

	// Well-known digest of "hello".
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if sum != want {
		t.Errorf("FileSHA256 = %s, want %s", sum, want)
	}
}

func TestBytes(t *testing.T) {
	if Bytes([]byte("a")) == Bytes([]byte("b")) {
		t.Error("different inputs produced identical checksums")
	}

	if Bytes(nil) != Bytes([]byte{}) {
		t.Error("nil and empty slice should hash identically")
	}
}
