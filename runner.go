package main

import (
	"log"

	"github.com/nf/intcode/intcode"
)

// StateKind describes why a StateFunc is being called.
type StateKind int

const (
	ClearState StateKind = iota // running
	QuietState                  // periodic update while running
	BreakState
	PauseState
	WaitState // waiting for input
	HaltState
	FaultState
)

// StateFunc is called by a Runner whenever the machine stops, and
// periodically while it runs. It is called from the Runner's goroutine and
// must not retain m.
type StateFunc func(m *intcode.Machine, k StateKind)

// sliceSteps is the number of instructions executed between checks for
// debugger commands.
const sliceSteps = 10000

// Runner executes a machine under the control of a debugger.
type Runner struct {
	paused bool
	state  StateFunc
	output func(int64)
	opts   []intcode.Option

	cmds chan command
}

type command struct {
	name   string
	addr   int64
	values []int64
	prog   []int64
}

// NewRunner returns a Runner that reports state changes to state and every
// value the program outputs to output. If paused is set, machines start
// paused and must be started with the "c" command.
func NewRunner(paused bool, state StateFunc, output func(int64), opts ...intcode.Option) *Runner {
	return &Runner{
		paused: paused,
		state:  state,
		output: output,
		opts:   opts,
		cmds:   make(chan command),
	}
}

// Debug sends a debugger command to the running machine:
//
//	s, step      execute one instruction
//	c, cont      continue running
//	p, pause     pause
//	b, break     break before executing the instruction at addr
//	             (a negative addr clears the breakpoint)
//	exit         stop and return from Run
func (r *Runner) Debug(cmd string, addr int64) {
	r.cmds <- command{name: cmd, addr: addr}
}

// Input queues values for the program, resuming it if it was waiting.
func (r *Runner) Input(v ...int64) {
	r.cmds <- command{name: "input", values: v}
}

// Reset replaces the running machine with a new one loaded with prog.
func (r *Runner) Reset(prog []int64) {
	r.cmds <- command{name: "reset", prog: prog}
}

// Run executes prog with the given initial input until the exit command is
// received. Input is queued again on every reset.
func (r *Runner) Run(prog, input []int64) {
	var (
		m       *intcode.Machine
		running bool
		waiting bool
		skipBrk bool
		brk     = int64(-1)
		shown   int
	)
	report := func(k StateKind) {
		if r.state != nil {
			r.state(m, k)
		}
	}
	flush := func() {
		if n := m.NumOutputs(); n > shown {
			for _, v := range m.Outputs()[shown:] {
				if r.output != nil {
					r.output(v)
				}
			}
			shown = n
		}
	}
	start := func(prog []int64) {
		m = intcode.NewMachine(prog, input, r.opts...)
		running, waiting, shown = !r.paused, false, 0
		if running {
			report(ClearState)
		} else {
			report(PauseState)
		}
	}

	start(prog)
	for {
		if running {
			k := r.exec(m, brk, skipBrk)
			skipBrk = false
			flush()
			if k != QuietState {
				running = false
				waiting = k == WaitState
			}
			report(k)
		}

		var c command
		if running {
			select {
			case c = <-r.cmds:
			default:
				continue
			}
		} else {
			c = <-r.cmds
		}

		switch c.name {
		case "exit":
			return
		case "reset":
			start(c.prog)
		case "input":
			m.AppendInput(c.values...)
			if waiting {
				running, waiting = true, false
				report(ClearState)
			}
		case "s", "step":
			running = false
			k := PauseState
			if err := m.Step(); err != nil {
				log.Print(err)
			}
			flush()
			switch m.Status() {
			case intcode.Halted:
				k = HaltState
			case intcode.Faulted:
				k = FaultState
			case intcode.Suspended:
				k = WaitState
			}
			waiting = k == WaitState
			report(k)
		case "c", "cont":
			running, waiting, skipBrk = true, false, true
			report(ClearState)
		case "p", "pause":
			if running {
				running = false
				report(PauseState)
			}
		case "b", "break":
			brk = c.addr
		default:
			log.Printf("unknown command %q", c.name)
		}
	}
}

// exec runs m for at most sliceSteps instructions and reports why it stopped.
func (r *Runner) exec(m *intcode.Machine, brk int64, skipBrk bool) StateKind {
	for i := 0; i < sliceSteps; i++ {
		if m.IP == brk && !(skipBrk && i == 0) {
			return BreakState
		}
		if err := m.Step(); err != nil {
			log.Print(err)
			return FaultState
		}
		switch m.Status() {
		case intcode.Halted:
			return HaltState
		case intcode.Suspended:
			return WaitState
		}
	}
	return QuietState
}
