package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
)

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	want := []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}
	text := "1,9,10,3,2,3,11,0,99,30,40,50\n"

	plain := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(plain, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	compressed := filepath.Join(dir, "prog.txt.zst")
	f, err := os.Create(compressed)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(text)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{plain, compressed} {
		got, err := loadProgram(name)
		if err != nil {
			t.Errorf("%s: %v", filepath.Base(name), err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", filepath.Base(name), diff)
		}
	}
}

func TestLoadProgramErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("1,two,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	notZstd := filepath.Join(dir, "plain.zst")
	if err := os.WriteFile(notZstd, []byte("1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{bad, notZstd, filepath.Join(dir, "missing.txt")} {
		if _, err := loadProgram(name); err == nil {
			t.Errorf("%s: got no error", filepath.Base(name))
		}
	}
}
