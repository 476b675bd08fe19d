package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/intcode/intcode"
)

// devMode runs the program under the debugger, restarting it whenever the
// program file (or the symbol file) changes.
func devMode(progFile, symFile string, input []int64, paused bool, opts []intcode.Option) error {
	progFile = filepath.Clean(progFile)
	if symFile != "" {
		symFile = filepath.Clean(symFile)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(progFile)); err != nil {
		return err
	}
	if symFile != "" && filepath.Dir(symFile) != filepath.Dir(progFile) {
		if err := watcher.Watch(filepath.Dir(symFile)); err != nil {
			return err
		}
	}

	debug := newDebugView()
	runner := NewRunner(paused, debug.StateFunc, debug.Output, opts...)
	debug.run = runner
	log.SetPrefix("")
	log.SetOutput(debug.log)
	closed := make(chan bool)
	go func() {
		if err := debug.Run(); err != nil {
			log.Fatalf("debug: %v", err)
		}
		log.SetOutput(os.Stderr)
		log.SetPrefix("intcode: ")
		close(closed)
	}()

	progCh := make(chan []int64)
	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				log.Printf("dev: load %s", filepath.Base(progFile))
				prog, err := loadProgram(progFile)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				if symFile != "" {
					syms, err := parseSymbols(symFile)
					if err != nil {
						log.Printf("dev: reading symbols: %v", err)
						break
					}
					debug.setSymbols(syms)
				}
				if !started {
					log.Printf("dev: start")
					select {
					case progCh <- prog:
					case <-closed:
						return
					}
					started = true
				} else {
					log.Printf("dev: reset")
					runner.Reset(prog)
				}
			case ev := <-watcher.Event:
				name := filepath.Clean(ev.Name)
				if (name == progFile || name == symFile) && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			case <-closed:
				return
			}
		}
	}()
	runLoaded(runner, progCh, input, closed)
	return nil
}

// runLoaded runs the first program received from progs until closed is
// closed. It returns at once if closed is closed before a program arrives.
func runLoaded(r *Runner, progs <-chan []int64, input []int64, closed <-chan bool) {
	select {
	case prog := <-progs:
		go func() {
			<-closed
			r.Debug("exit", 0)
		}()
		r.Run(prog, input)
	case <-closed:
	}
}
