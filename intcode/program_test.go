package intcode

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	for _, c := range []struct {
		in   string
		want []int64
		err  string
	}{
		{in: "1,0,0,3,99", want: []int64{1, 0, 0, 3, 99}},
		{in: "1,-2, 3 ,4\n", want: []int64{1, -2, 3, 4}},
		{in: "\n\n  104,1125899906842624,99  \n1,2\n", want: []int64{104, 1125899906842624, 99}},
		{in: "42", want: []int64{42}},
		{in: "1,x,3", err: "field 1"},
		{in: "1,,3", err: "field 1"},
		{in: "", err: "empty program"},
		{in: "\n \n", err: "empty program"},
	} {
		got, err := Parse(strings.NewReader(c.in))
		if c.err != "" {
			if err == nil || !strings.Contains(err.Error(), c.err) {
				t.Errorf("Parse(%q) error = %v, want %q", c.in, err, c.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestFormat(t *testing.T) {
	const s = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	p, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	if g := Format(p); g != s {
		t.Errorf("Format = %q, want %q", g, s)
	}
	if g := Format(nil); g != "" {
		t.Errorf("Format(nil) = %q, want empty", g)
	}
}
