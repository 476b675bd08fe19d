package intcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a program from the first non-blank line of r: comma separated
// signed decimal integers.
func Parse(r io.Reader) ([]int64, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		prog := make([]int64, 0, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "field %d", i)
			}
			prog = append(prog, v)
		}
		return prog, nil
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading program")
	}
	return nil, errors.New("empty program")
}

// Format returns the program text for prog.
func Format(prog []int64) string {
	var b strings.Builder
	for i, v := range prog {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
