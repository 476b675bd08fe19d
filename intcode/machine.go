// Package intcode provides an implementation of an Intcode computer, called
// Machine, that can be used to execute Intcode programs.
package intcode

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// DefaultExtension is the number of zero cells made addressable beyond the
// end of the program.
const DefaultExtension = 1000000

// Machine is an implementation of an Intcode computer.
type Machine struct {
	Mem  Memory
	IP   int64
	Base int64

	// Steps counts the instructions executed so far.
	Steps int64

	// Tracef, if not nil, is called with each instruction before it is
	// executed.
	Tracef func(format string, args ...any)

	input  []int64
	output []int64
	status Status
	fault  error
}

// Option configures a Machine.
type Option func(*Machine)

// Extension sets the number of addressable cells beyond the program.
func Extension(n int) Option {
	return func(m *Machine) { m.Mem.limit = int64(len(m.Mem.cells) + n) }
}

// Trace sets the Tracef hook.
func Trace(f func(string, ...any)) Option {
	return func(m *Machine) { m.Tracef = f }
}

// NewMachine returns a Ready machine loaded with a copy of program and with
// input queued.
func NewMachine(program, input []int64, opts ...Option) *Machine {
	m := &Machine{
		Mem: Memory{
			cells: slices.Clone(program),
			limit: int64(len(program) + DefaultExtension),
		},
		input: slices.Clone(input),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Nopf is a Tracef that does nothing.
func Nopf(string, ...any) {}

// ErrStepLimit is returned by RunN when its instruction budget runs out
// before the machine halts or suspends.
var ErrStepLimit = errors.New("step limit reached")

// Status returns the lifecycle state of the machine.
func (m *Machine) Status() Status { return m.status }

// AppendInput queues values for the input instruction.
func (m *Machine) AppendInput(v ...int64) { m.input = append(m.input, v...) }

// PendingInput reports the number of queued input values.
func (m *Machine) PendingInput() int { return len(m.input) }

// Outputs returns a copy of every value output so far.
func (m *Machine) Outputs() []int64 { return slices.Clone(m.output) }

// NumOutputs returns the number of values output so far.
func (m *Machine) NumOutputs() int { return len(m.output) }

// LastOutput returns the most recent output value, and false if there is none.
func (m *Machine) LastOutput() (int64, bool) {
	if len(m.output) == 0 {
		return 0, false
	}
	return m.output[len(m.output)-1], true
}

// Run executes instructions until the machine halts, suspends waiting for
// input, or faults. A fault is returned as a Fault error; suspension and
// halting are reported through Status.
func (m *Machine) Run() error {
	return m.run(-1)
}

// RunN is like Run but executes at most n instructions, returning
// ErrStepLimit if the machine is still running after that.
func (m *Machine) RunN(n int64) error {
	return m.run(n)
}

func (m *Machine) run(n int64) error {
	switch m.status {
	case Halted:
		return nil
	case Faulted:
		return m.fault
	}
	m.status = Ready
	for ; n != 0; n-- {
		if err := m.Step(); err != nil {
			return err
		}
		if m.status != Ready {
			return nil
		}
	}
	return ErrStepLimit
}

// Step executes the instruction at m.IP. A suspended machine retries its
// input instruction. Step does nothing on a halted machine and returns the
// recorded fault on a faulted one.
func (m *Machine) Step() error {
	switch m.status {
	case Halted:
		return nil
	case Faulted:
		return m.fault
	}
	m.status = Ready

	in, err := m.decode()
	if err != nil {
		return m.fail(err)
	}
	if m.Tracef != nil {
		m.Tracef("%.6d %s", m.IP, in)
	}
	if in.Op == Halt {
		m.status = Halted
		return nil
	}
	if err := instructions[in.Op].exec(m, &in); err != nil {
		return m.fail(err)
	}
	if m.status == Ready {
		m.Steps++
	}
	return nil
}

func (m *Machine) fail(err error) error {
	m.status = Faulted
	m.fault = err
	return err
}

// Fault is returned by Run and Step when the program cannot continue.
type Fault struct {
	Code FaultCode
	IP   int64 // address of the faulting instruction
	Word int64 // raw instruction word
	Op   Op
	Addr int64 // offending address, for OutOfBounds
}

func (f *Fault) Error() string {
	switch {
	case f.Code == OutOfBounds && f.Op == 0:
		return fmt.Sprintf("%s: fetching instruction at %d", f.Code, f.IP)
	case f.Code == OutOfBounds:
		return fmt.Sprintf("%s: address %d executing %s (%d) at %d", f.Code, f.Addr, f.Op, f.Word, f.IP)
	default:
		return fmt.Sprintf("%s: word %d at %d", f.Code, f.Word, f.IP)
	}
}

// FaultCode signifies the type of condition that stopped execution.
type FaultCode byte

const (
	OutOfBounds FaultCode = iota + 1
	InvalidOpcode
	InvalidMode
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		OutOfBounds:   "address out of bounds",
		InvalidOpcode: "invalid opcode",
		InvalidMode:   "invalid parameter mode",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown fault (%d)", byte(c))
}

// Status is the lifecycle state of a Machine.
type Status byte

const (
	Ready Status = iota
	Suspended
	Halted
	Faulted
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Suspended:
		return "suspended"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("Status(%d)", byte(s))
}
