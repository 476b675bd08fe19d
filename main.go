// Command intcode runs Intcode programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/nf/intcode/intcode"
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	var (
		inputFlag       = flag.String("input", "", "comma separated input `values`")
		interactiveFlag = flag.Bool("i", false, "read further input from stdin when the program waits for it")
		asciiFlag       = flag.Bool("ascii", false, "exchange input and output as ASCII text")
		stepsFlag       = flag.Int64("steps", 0, "stop after `n` instructions (0 means no limit)")
		traceFlag       = flag.Bool("trace", false, "log every instruction executed")
		disasmFlag      = flag.Bool("disasm", false, "print a disassembly of the program and exit")

		droidFlag   = flag.Bool("droid", false, "run the program as a repair droid and map its maze")
		exploreFlag = flag.String("explore", "full", "droid exploration `strategy`: random or full")
		seedFlag    = flag.Int64("seed", 1, "random seed for droid exploration")
		movesFlag   = flag.Int("moves", 0, "stop droid exploration after `n` moves (0 means no limit)")
		delayFlag   = flag.Duration("delay", 0, "pause between droid moves")
		guiFlag     = flag.Bool("gui", false, "show the droid's maze in a window")
		noTermFlag  = flag.Bool("noterm", false, "don't show the droid's maze in the terminal")

		devFlag   = flag.Bool("dev", false, "enable developer mode (restart the program when it changes)")
		debugFlag = flag.Bool("debug", false, "enable debugger (implies -dev)")
		symFlag   = flag.String("sym", "", "read debugger symbols from `file`")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -droid [-explore random|full] [-gui] <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <-dev | -debug> [-sym file] <program>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	var input []int64
	if *asciiFlag {
		input = asciiValues(*inputFlag)
	} else {
		vs, err := parseValues(*inputFlag)
		if err != nil {
			log.Fatal(err)
		}
		input = vs
	}
	var opts []intcode.Option
	if *traceFlag {
		opts = append(opts, intcode.Trace(log.Printf))
	}

	if *devFlag || *debugFlag {
		if err := devMode(flag.Arg(0), *symFlag, input, *debugFlag, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	prog, err := loadProgram(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if *disasmFlag {
		var syms symbols
		if *symFlag != "" {
			if syms, err = parseSymbols(*symFlag); err != nil {
				log.Fatal(err)
			}
		}
		printDisasm(os.Stdout, prog, syms)
		return
	}

	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		atexit.Register(func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	if *droidFlag {
		err = droidMode(os.Stdout, prog, droidConfig{
			strategy: *exploreFlag,
			seed:     *seedFlag,
			maxMoves: *movesFlag,
			delay:    *delayFlag,
			gui:      *guiFlag,
			term:     !*noTermFlag,
		}, opts)
	} else {
		var con *Console
		if *interactiveFlag {
			con = newConsole(os.Stdin, *asciiFlag)
		}
		err = run(os.Stdout, prog, input, con, *stepsFlag, *asciiFlag, opts)
		if con != nil {
			con.Close()
		}
	}
	if err != nil {
		atexit.Fatal(err)
	}
	atexit.Exit(0)
}

// run executes prog, writing its output to w. When the program waits for
// input it is read from con, or run fails if con is nil. If steps is
// positive, run fails once that many instructions have executed.
func run(w io.Writer, prog, input []int64, con *Console, steps int64, ascii bool, opts []intcode.Option) error {
	var (
		m     = intcode.NewMachine(prog, input, opts...)
		p     = printer{w: w, ascii: ascii}
		shown = 0
	)
	for {
		var err error
		if steps > 0 {
			err = m.RunN(steps - m.Steps)
		} else {
			err = m.Run()
		}
		out := m.Outputs()
		for _, v := range out[shown:] {
			p.print(v)
		}
		shown = len(out)
		if err == intcode.ErrStepLimit {
			return errors.Errorf("stopped after %d steps at ip %d", m.Steps, m.IP)
		}
		if err != nil {
			return err
		}

		switch m.Status() {
		case intcode.Halted:
			return nil
		case intcode.Suspended:
			if con == nil {
				return errors.Errorf("program waiting for input at ip %d", m.IP)
			}
			vs, err := con.Next()
			if err == io.EOF {
				return errors.Errorf("end of input while program waiting at ip %d", m.IP)
			}
			if err != nil {
				return err
			}
			m.AppendInput(vs...)
		}
	}
}
