package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Console feeds lines read from a reader to a program waiting for input.
type Console struct {
	ascii bool
	lines <-chan string
	err   <-chan error
	done  chan bool
	once  sync.Once
	last  error // sticky once the reader stops
}

var errConsoleClosed = errors.New("console closed")

// newConsole starts reading lines from r. In ASCII mode each line is
// delivered as its character codes followed by a newline; otherwise it is
// parsed as a list of integers.
func newConsole(r io.Reader, ascii bool) *Console {
	var (
		lines = make(chan string)
		errc  = make(chan error, 1)
		done  = make(chan bool)
	)
	go readInput(r, lines, errc, done)
	return &Console{ascii: ascii, lines: lines, err: errc, done: done}
}

// Next returns the values from the next line of input. It returns io.EOF
// when the input is exhausted, and on every call after that.
func (c *Console) Next() ([]int64, error) {
	if c.last != nil {
		return nil, c.last
	}
	select {
	case line := <-c.lines:
		if c.ascii {
			return asciiValues(line + "\n"), nil
		}
		return parseValues(line)
	case err := <-c.err:
		c.last = err
		return nil, err
	case <-c.done:
		c.last = errConsoleClosed
		return nil, c.last
	}
}

// Close stops delivering lines. A reader blocked in Read is not
// interrupted, but no line read after Close is delivered.
func (c *Console) Close() {
	c.once.Do(func() { close(c.done) })
}

func readInput(r io.Reader, lines chan<- string, errc chan<- error, done <-chan bool) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		select {
		case lines <- s.Text():
		case <-done:
			return
		}
	}
	if err := s.Err(); err != nil {
		errc <- errors.Wrap(err, "reading input")
		return
	}
	errc <- io.EOF
}

// parseValues parses integers separated by commas or spaces.
func parseValues(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	vs := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad input value %q", f)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func asciiValues(s string) []int64 {
	vs := make([]int64, 0, len(s))
	for _, b := range []byte(s) {
		vs = append(vs, int64(b))
	}
	return vs
}

// printer writes program output, one value per line, or as text in ASCII
// mode.
type printer struct {
	w     io.Writer
	ascii bool
}

func (p printer) print(v int64) {
	if p.ascii && v >= 0 && v < 0x80 {
		p.w.Write([]byte{byte(v)})
		return
	}
	fmt.Fprintln(p.w, v)
}
