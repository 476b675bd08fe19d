package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type symbols []symbol

func (s symbols) forAddr(addr int64) (ss []symbol) {
	i := sort.Search(len(s), func(i int) bool { return s[i].addr >= addr })
	for ; i < len(s); i++ {
		if s[i].addr == addr {
			ss = append(ss, s[i])
		}
	}
	return ss
}

func (s symbols) withLabelPrefix(prefix string) (ss []symbol) {
	for _, sym := range s {
		if strings.HasPrefix(sym.label, prefix) {
			ss = append(ss, sym)
		}
	}
	return ss
}

// resolve returns the symbol labelled arg, or an unlabelled symbol if arg is
// a decimal address.
func (s symbols) resolve(arg string) (symbol, bool) {
	for _, sym := range s {
		if sym.label == arg {
			return sym, true
		}
	}
	addr, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || addr < 0 {
		return symbol{}, false
	}
	if ss := s.forAddr(addr); len(ss) > 0 {
		return ss[0], true
	}
	return symbol{addr: addr, label: arg}, true
}

type symbol struct {
	addr  int64
	label string
}

func (s symbol) String() string { return fmt.Sprintf("%s (%d)", s.label, s.addr) }

// parseSymbols reads a symbol file: one "<address> <label>" pair per line.
// Blank lines and lines starting with '#' are ignored.
func parseSymbols(symFile string) (symbols, error) {
	f, err := os.Open(symFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		ss symbols
		sc = bufio.NewScanner(f)
		n  = 0
	)
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		addr, label, ok := strings.Cut(line, " ")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return nil, errors.Errorf("%s:%d: missing label", symFile, n)
		}
		a, err := strconv.ParseInt(addr, 10, 64)
		if err != nil || a < 0 {
			return nil, errors.Errorf("%s:%d: invalid address %q", symFile, n, addr)
		}
		ss = append(ss, symbol{addr: a, label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, symFile)
	}
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].addr < ss[j].addr
	})
	return ss, nil
}
