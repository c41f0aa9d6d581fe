package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCopyFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "2019", "2019-05", "dst.jpg")
	write(t, src, "payload")

	if err := (OSFS{}).CopyFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	d := filepath.Join(dir, "d")
	write(t, a, "identical bytes")
	write(t, b, "identical bytes")
	write(t, c, "different bytes!")
	write(t, d, "short")

	osfs := OSFS{}
	if same, err := osfs.SameContent(a, b); err != nil || !same {
		t.Fatalf("expected same content (err=%v)", err)
	}
	if same, err := osfs.SameContent(a, c); err != nil || same {
		t.Fatalf("expected different content (err=%v)", err)
	}
	if same, err := osfs.SameContent(a, d); err != nil || same {
		t.Fatalf("expected size mismatch (err=%v)", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "here")
	write(t, present, "x")

	osfs := OSFS{}
	if ok, err := osfs.Exists(present); err != nil || !ok {
		t.Fatalf("expected file to exist (err=%v)", err)
	}
	if ok, err := osfs.Exists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("expected file to be absent (err=%v)", err)
	}
}
