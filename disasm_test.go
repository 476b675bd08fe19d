package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisassemble(t *testing.T) {
	var (
		prog = []int64{1101, 2, 3, 0, 99, 7}
		syms = symbols{{0, "start"}, {4, "end"}, {4, "done"}}
	)
	type row struct {
		Addr  int64
		Label string
		Words []int64
		Instr string
	}
	var got []row
	for _, r := range disassemble(prog, syms) {
		got = append(got, row{r.addr, r.label, r.words, r.instr.String()})
	}
	want := []row{
		{0, "start", []int64{1101, 2, 3, 0}, "ADD #2 #3 [0]"},
		{4, "end done", []int64{99}, "HLT"},
		{5, "", []int64{7}, "DATA 7"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disassembly mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintDisasm(t *testing.T) {
	var b bytes.Buffer
	printDisasm(&b, []int64{1, 5, 6, 7, 99}, nil)
	out := b.String()
	for _, s := range []string{"Addr", "Instruction", "ADD [5] [6] [7]", "1,5,6,7", "HLT"} {
		if !strings.Contains(out, s) {
			t.Errorf("listing does not contain %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "INSTRUCTION") {
		t.Errorf("listing headers are upper case:\n%s", out)
	}
}
