package intcode

import (
	"strings"
	"testing"
)

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{
		Add:         "ADD",
		Mul:         "MUL",
		Input:       "IN",
		Output:      "OUT",
		JumpIfTrue:  "JNZ",
		JumpIfFalse: "JZ",
		LessThan:    "LT",
		Equals:      "EQ",
		AdjustBase:  "ARB",
		Halt:        "HLT",
		0:           "Op(0)",
		42:          "Op(42)",
		-3:          "Op(-3)",
		100:         "Op(100)",
	} {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", int64(op), got, want)
		}
	}
}

// Check that every defined opcode has a handler and that the arity matches
// the instruction widths used by the machine.
func TestInstructionTable(t *testing.T) {
	arity := map[Op]int{
		Add: 3, Mul: 3, Input: 1, Output: 1, JumpIfTrue: 2,
		JumpIfFalse: 2, LessThan: 3, Equals: 3, AdjustBase: 1, Halt: 0,
	}
	for i, in := range instructions {
		op := Op(i)
		w, ok := arity[op]
		if !ok {
			if in.name != "" || in.exec != nil {
				t.Errorf("unexpected entry for %d: %q", i, in.name)
			}
			continue
		}
		if g := op.Arity(); g != w {
			t.Errorf("%v.Arity() = %d, want %d", op, g, w)
		}
		if (in.exec == nil) != (op == Halt) {
			t.Errorf("%v has handler %v", op, in.exec != nil)
		}
	}
}

func TestDisassemble(t *testing.T) {
	prog := []int64{1101, 2, 3, 0, 21207, -1, 4, 7, 203, -2, 2106, 0, 3, 99, 77, -5, 2}
	m := NewMachine(prog, nil, Extension(0))
	var got []string
	for addr := int64(0); addr < m.Mem.Len(); {
		in := Disassemble(&m.Mem, addr)
		if in.Addr != addr {
			t.Fatalf("Disassemble(%d).Addr = %d", addr, in.Addr)
		}
		got = append(got, in.String())
		addr += in.Width()
	}
	want := []string{
		"ADD #2 #3 [0]",
		"LT r[-1] #4 r[7]",
		"IN r[-2]",
		"JZ #0 r[3]",
		"HLT",
		"DATA 77",
		"DATA -5",
		"DATA 2", // MUL without room for its parameters
	}
	if g, w := strings.Join(got, "\n"), strings.Join(want, "\n"); g != w {
		t.Errorf("disassembly is\n%s\nwant\n%s", g, w)
	}
}
