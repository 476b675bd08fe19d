package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/intcode/intcode"
)

type debugView struct {
	run *Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu      sync.Mutex
	brk     *symbol
	syms    symbols
	watches []symbol
}

func (d *debugView) symbols() symbols {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syms
}

func (d *debugView) setSymbols(s symbols) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.syms = s
}

func newDebugView() *debugView {
	d := &debugView{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "b", "break", "w", "watch":
				for _, s := range d.symbols().withLabelPrefix(arg) {
					entries = append(entries, cmd+" "+s.label)
				}
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugView) command(cmd string) {
	if cmd == "exit" {
		d.app.Stop()
		return
	}
	cmd, arg, hasArg := strings.Cut(cmd, " ")
	switch cmd {
	case "b", "break":
		if !hasArg {
			d.run.Debug(cmd, -1)
			d.mu.Lock()
			d.brk = nil
			d.mu.Unlock()
			log.Print("cleared break")
			return
		}
		s, ok := d.symbols().resolve(arg)
		if !ok {
			log.Printf("invalid addr %q", arg)
			return
		}
		d.run.Debug(cmd, s.addr)
		d.mu.Lock()
		d.brk = &s
		d.mu.Unlock()
		log.Printf("set break %d", s.addr)
	case "w", "watch":
		s, ok := d.symbols().resolve(arg)
		if !ok {
			log.Printf("invalid address %q", arg)
			return
		}
		d.mu.Lock()
		d.watches = append(d.watches, s)
		d.mu.Unlock()
		log.Printf("watching %d", s.addr)
	case "i", "input":
		vs, err := parseValues(arg)
		if err != nil {
			log.Print(err)
			return
		}
		d.run.Input(vs...)
	case "s", "step", "c", "cont", "p", "pause":
		d.run.Debug(cmd, 0)
	default:
		log.Printf("unknown command %q", cmd)
	}
}

func (d *debugView) Run() error { return d.app.Run() }

func (d *debugView) Output(v int64) { log.Printf("out: %d", v) }

func (d *debugView) StateFunc(m *intcode.Machine, k StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != QuietState {
		state = stateMsg(d.symbols(), m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case BreakState, WaitState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkGreen)
		case FaultState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != QuietState {
			d.state.SetText(state)
		}
	})
}

func stateMsg(syms symbols, m *intcode.Machine, k StateKind) string {
	var (
		in    = intcode.Disassemble(&m.Mem, m.IP)
		ipSym string
	)
	if s := syms.forAddr(m.IP); len(s) > 0 {
		ipSym = s[0].String()
	}
	kind := "       "
	switch k {
	case BreakState:
		kind = "[break]"
	case PauseState:
		kind = "[pause]"
	case WaitState:
		kind = "[input]"
	case HaltState:
		kind = "[halt] "
	case FaultState:
		kind = "[FAULT]"
	}
	out := m.Outputs()
	if len(out) > 8 {
		out = out[len(out)-8:]
	}
	return fmt.Sprintf("%.6d %-24s %s %s\nbase: %d steps: %d queued: %d\nout: %v\n",
		m.IP, in, kind, ipSym, m.Base, m.Steps, m.PendingInput(), out)
}

func (d *debugView) watchContent(m *intcode.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if s := d.brk; s != nil {
		fmt.Fprintf(&b, "%s [%d] brk!\n", s.label, s.addr)
	}
	for _, w := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		v, ok := m.Mem.Load(w.addr)
		if !ok {
			fmt.Fprintf(&b, "%s [%d] ----", w.label, w.addr)
			continue
		}
		fmt.Fprintf(&b, "%s [%d] %d", w.label, w.addr, v)
	}
	return b.String()
}
