package intcode

import (
	"fmt"
	"strings"
)

// Op represents an Intcode opcode, the low two decimal digits of an
// instruction word.
type Op int64

const (
	Add         Op = 1
	Mul         Op = 2
	Input       Op = 3
	Output      Op = 4
	JumpIfTrue  Op = 5
	JumpIfFalse Op = 6
	LessThan    Op = 7
	Equals      Op = 8
	AdjustBase  Op = 9
	Halt        Op = 99
)

func (o Op) String() string {
	if o >= 0 && int(o) < len(instructions) && instructions[o].name != "" {
		return instructions[o].name
	}
	return fmt.Sprintf("Op(%d)", int64(o))
}

// Arity returns the number of parameters taken by the opcode.
func (o Op) Arity() int {
	if o >= 0 && int(o) < len(instructions) {
		return instructions[o].arity
	}
	return 0
}

// Mode is a parameter addressing mode.
type Mode byte

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

type instruction struct {
	name  string
	arity int
	exec  func(m *Machine, in *Instr) error
}

var instructions = [100]instruction{
	Add:         {"ADD", 3, execAdd},
	Mul:         {"MUL", 3, execMul},
	Input:       {"IN", 1, execInput},
	Output:      {"OUT", 1, execOutput},
	JumpIfTrue:  {"JNZ", 2, execJumpIfTrue},
	JumpIfFalse: {"JZ", 2, execJumpIfFalse},
	LessThan:    {"LT", 3, execLessThan},
	Equals:      {"EQ", 3, execEquals},
	AdjustBase:  {"ARB", 1, execAdjustBase},
	Halt:        {"HLT", 0, nil},
}

// Instr is a decoded instruction.
type Instr struct {
	Addr   int64 // address of the instruction word
	Word   int64
	Op     Op
	Modes  [3]Mode
	Params []int64 // raw parameter cells

	addrs [3]int64 // resolved operand addresses
}

// Width returns the number of cells occupied by the instruction.
func (in Instr) Width() int64 { return int64(len(in.Params)) + 1 }

func (in Instr) String() string {
	if in.Op == 0 {
		return fmt.Sprintf("DATA %d", in.Word)
	}
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, p := range in.Params {
		b.WriteByte(' ')
		switch in.Modes[i] {
		case Position:
			fmt.Fprintf(&b, "[%d]", p)
		case Immediate:
			fmt.Fprintf(&b, "#%d", p)
		case Relative:
			fmt.Fprintf(&b, "r[%d]", p)
		}
	}
	return b.String()
}

// Disassemble decodes the instruction at addr without executing it. Words
// that do not decode to a valid instruction are returned with a zero Op and
// a Width of one.
func Disassemble(mem *Memory, addr int64) Instr {
	in, err := decodeAt(mem, addr)
	if err != nil {
		w, _ := mem.Load(addr)
		return Instr{Addr: addr, Word: w}
	}
	return in
}

func decodeAt(mem *Memory, ip int64) (Instr, error) {
	word, ok := mem.Load(ip)
	if !ok {
		return Instr{}, &Fault{Code: OutOfBounds, IP: ip, Addr: ip}
	}
	in := Instr{Addr: ip, Word: word, Op: Op(word % 100)}
	if word < 0 || instructions[in.Op].name == "" {
		return Instr{}, &Fault{Code: InvalidOpcode, IP: ip, Word: word}
	}
	n := in.Op.Arity()
	modes := [3]int64{(word / 100) % 10, (word / 1000) % 10, word / 10000}
	in.Params = make([]int64, n)
	for i := 0; i < n; i++ {
		if modes[i] > int64(Relative) {
			return Instr{}, &Fault{Code: InvalidMode, IP: ip, Word: word, Op: in.Op}
		}
		in.Modes[i] = Mode(modes[i])
		addr := ip + 1 + int64(i)
		p, ok := mem.Load(addr)
		if !ok {
			return Instr{}, &Fault{Code: OutOfBounds, IP: ip, Word: word, Op: in.Op, Addr: addr}
		}
		in.Params[i] = p
	}
	return in, nil
}

// decode decodes the instruction at m.IP and resolves its operand addresses.
func (m *Machine) decode() (Instr, error) {
	in, err := decodeAt(&m.Mem, m.IP)
	if err != nil {
		return in, err
	}
	for i, p := range in.Params {
		switch in.Modes[i] {
		case Position:
			in.addrs[i] = p
		case Immediate:
			// The third parameter is always a write target, and an
			// immediate write target is treated as a position.
			if i < 2 {
				in.addrs[i] = in.Addr + 1 + int64(i)
			} else {
				in.addrs[i] = p
			}
		case Relative:
			in.addrs[i] = m.Base + p
		}
	}
	return in, nil
}

func (m *Machine) arg(in *Instr, i int) (int64, error) {
	v, ok := m.Mem.Load(in.addrs[i])
	if !ok {
		return 0, m.boundsFault(in, in.addrs[i])
	}
	return v, nil
}

func (m *Machine) set(in *Instr, i int, v int64) error {
	if !m.Mem.Store(in.addrs[i], v) {
		return m.boundsFault(in, in.addrs[i])
	}
	return nil
}

func (m *Machine) boundsFault(in *Instr, addr int64) error {
	return &Fault{Code: OutOfBounds, IP: in.Addr, Word: in.Word, Op: in.Op, Addr: addr}
}

func (m *Machine) args2(in *Instr) (a, b int64, err error) {
	if a, err = m.arg(in, 0); err != nil {
		return
	}
	b, err = m.arg(in, 1)
	return
}

func binary(f func(a, b int64) int64) func(*Machine, *Instr) error {
	return func(m *Machine, in *Instr) error {
		a, b, err := m.args2(in)
		if err != nil {
			return err
		}
		if err := m.set(in, 2, f(a, b)); err != nil {
			return err
		}
		m.IP += in.Width()
		return nil
	}
}

func jump(cond func(v int64) bool) func(*Machine, *Instr) error {
	return func(m *Machine, in *Instr) error {
		v, err := m.arg(in, 0)
		if err != nil {
			return err
		}
		if !cond(v) {
			m.IP += in.Width()
			return nil
		}
		ip, err := m.arg(in, 1)
		if err != nil {
			return err
		}
		m.IP = ip
		return nil
	}
}

var (
	execAdd         = binary(func(a, b int64) int64 { return a + b })
	execMul         = binary(func(a, b int64) int64 { return a * b })
	execLessThan    = binary(func(a, b int64) int64 { return boolCell(a < b) })
	execEquals      = binary(func(a, b int64) int64 { return boolCell(a == b) })
	execJumpIfTrue  = jump(func(v int64) bool { return v != 0 })
	execJumpIfFalse = jump(func(v int64) bool { return v == 0 })
)

func execInput(m *Machine, in *Instr) error {
	if len(m.input) == 0 {
		m.status = Suspended
		return nil
	}
	if err := m.set(in, 0, m.input[0]); err != nil {
		return err
	}
	m.input = m.input[1:]
	m.IP += in.Width()
	return nil
}

func execOutput(m *Machine, in *Instr) error {
	v, err := m.arg(in, 0)
	if err != nil {
		return err
	}
	m.output = append(m.output, v)
	m.IP += in.Width()
	return nil
}

func execAdjustBase(m *Machine, in *Instr) error {
	v, err := m.arg(in, 0)
	if err != nil {
		return err
	}
	m.Base += v
	m.IP += in.Width()
	return nil
}

func boolCell(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
