package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nf/intcode/intcode"
)

type disasmRow struct {
	addr  int64
	label string
	words []int64
	instr intcode.Instr
}

func disassemble(prog []int64, syms symbols) []disasmRow {
	m := intcode.NewMachine(prog, nil, intcode.Extension(0))
	var rows []disasmRow
	for addr := int64(0); addr < m.Mem.Len(); {
		in := intcode.Disassemble(&m.Mem, addr)
		r := disasmRow{
			addr:  addr,
			words: m.Mem.Slice(addr, addr+in.Width()),
			instr: in,
		}
		var labels []string
		for _, s := range syms.forAddr(addr) {
			labels = append(labels, s.label)
		}
		r.label = strings.Join(labels, " ")
		rows = append(rows, r)
		addr += in.Width()
	}
	return rows
}

// printDisasm writes a disassembly listing of prog to w.
func printDisasm(w io.Writer, prog []int64, syms symbols) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Addr", "Label", "Words", "Instruction"})
	for _, r := range disassemble(prog, syms) {
		t.AppendRow(table.Row{r.addr, r.label, intcode.Format(r.words), r.instr.String()})
	}
	t.Render()
}
