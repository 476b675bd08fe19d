package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseValues(t *testing.T) {
	for _, c := range []struct {
		in   string
		want []int64
		err  bool
	}{
		{"", nil, false},
		{"42", []int64{42}, false},
		{"1,2,3", []int64{1, 2, 3}, false},
		{" 1, -2 3\t4 ", []int64{1, -2, 3, 4}, false},
		{"1,,2", []int64{1, 2}, false},
		{"1,x", nil, true},
		{"99999999999999999999", nil, true},
	} {
		got, err := parseValues(c.in)
		if c.err {
			if err == nil {
				t.Errorf("parseValues(%q) = %v, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseValues(%q): %v", c.in, err)
			continue
		}
		if diff := cmp.Diff(c.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("parseValues(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestConsole(t *testing.T) {
	c := newConsole(strings.NewReader("1,2\n3\n\n"), false)
	for _, want := range [][]int64{{1, 2}, {3}, {}} {
		got, err := c.Next()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Next mismatch (-want +got):\n%s", diff)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := c.Next(); err != io.EOF {
			t.Errorf("Next at end of input (call %d): got %v, want io.EOF", i, err)
		}
	}
}

func TestConsoleClose(t *testing.T) {
	var (
		lines = make(chan string)
		errc  = make(chan error, 1)
		done  = make(chan bool)
		exit  = make(chan bool)
	)
	go func() {
		readInput(strings.NewReader("1\n2\n"), lines, errc, done)
		close(exit)
	}()
	close(done)
	select {
	case <-exit:
	case <-time.After(5 * time.Second):
		t.Fatal("readInput still blocked after close")
	}

	c := newConsole(strings.NewReader(""), false)
	c.Close()
	c.Close()
	for i := 0; i < 2; i++ {
		if _, err := c.Next(); err == nil {
			t.Errorf("Next after Close (call %d): got no error", i)
		}
	}
}

func TestConsoleASCII(t *testing.T) {
	c := newConsole(strings.NewReader("Hi\nno\n"), true)
	got, err := c.Next()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{'H', 'i', '\n'}, got); diff != "" {
		t.Errorf("Next mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter(t *testing.T) {
	var b bytes.Buffer
	p := printer{w: &b}
	p.print(65)
	p.print(-3)
	if got, want := b.String(), "65\n-3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	b.Reset()
	p.ascii = true
	for _, v := range []int64{'o', 'k', '\n', 1219} {
		p.print(v)
	}
	if got, want := b.String(), "ok\n1219\n"; got != want {
		t.Errorf("ascii: got %q, want %q", got, want)
	}
}
