package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/nf/intcode/intcode"
)

// loadProgram reads a program from a text file, which may be compressed with
// zstd if its name ends in ".zst".
func loadProgram(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(name) == ".zst" {
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", name)
		}
		defer d.Close()
		r = d
	}
	prog, err := intcode.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	return prog, nil
}
