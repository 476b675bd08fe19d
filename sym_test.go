package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeSymbols(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "prog.sym")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestParseSymbols(t *testing.T) {
	syms, err := parseSymbols(writeSymbols(t, `
# loop body
10 loop
0 start

10   again
`))
	if err != nil {
		t.Fatal(err)
	}
	want := symbols{{0, "start"}, {10, "loop"}, {10, "again"}}
	if diff := cmp.Diff(want, syms, cmp.AllowUnexported(symbol{})); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}

	if got := syms.forAddr(10); len(got) != 2 {
		t.Errorf("forAddr(10) = %v, want 2 symbols", got)
	}
	if got := syms.forAddr(5); len(got) != 0 {
		t.Errorf("forAddr(5) = %v, want none", got)
	}
	if got := syms.withLabelPrefix("a"); len(got) != 1 || got[0].label != "again" {
		t.Errorf("withLabelPrefix(a) = %v", got)
	}

	for _, c := range []struct {
		arg  string
		want symbol
		ok   bool
	}{
		{"loop", symbol{10, "loop"}, true},
		{"0", symbol{0, "start"}, true},
		{"12", symbol{12, "12"}, true},
		{"-1", symbol{}, false},
		{"nope", symbol{}, false},
	} {
		got, ok := syms.resolve(c.arg)
		if ok != c.ok || got != c.want {
			t.Errorf("resolve(%q) = %v, %v; want %v, %v", c.arg, got, ok, c.want, c.ok)
		}
	}
}

func TestParseSymbolsErrors(t *testing.T) {
	for _, content := range []string{
		"5\n",
		"x label\n",
		"-3 label\n",
	} {
		if _, err := parseSymbols(writeSymbols(t, content)); err == nil {
			t.Errorf("parseSymbols(%q): got no error", content)
		}
	}
}
