// Command corescript is a CLI front end for the interpreter core: it
// evaluates a source file or drops into a REPL, the same two modes the
// teacher's cmd/langlang driver supports for its grammar/match workflow,
// adapted here from "match a grammar against input" to "evaluate source
// text against the interpreter".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/homoiconic-lang/core"
	"github.com/homoiconic-lang/core/hostapi"
	"github.com/homoiconic-lang/core/parse"
)

type args struct {
	inputPath   *string
	interactive *bool
	relaxed     *bool
}

func readArgs() *args {
	a := &args{
		inputPath:   flag.String("input", "", "Path to a source file to evaluate"),
		interactive: flag.Bool("interactive", false, "Drop into a REPL"),
		relaxed:     flag.Bool("relaxed", false, "Scan in relaxed (error-recovering) mode"),
	}
	flag.Parse()
	return a
}

func newInterpreter(relaxed bool) (*core.Interpreter, *core.Context) {
	cfg := core.NewConfig()
	cfg.SetBool("scanner.relaxed", relaxed)
	vm := core.NewInterpreter(cfg)

	lib := core.NewContext(32)
	lib.SetArchetype(core.Cell{Kind: core.KindFrame})
	core.RegisterNatives(vm, lib)
	parse.RegisterNative(vm, lib)

	return vm, lib
}

func main() {
	a := readArgs()
	vm, lib := newInterpreter(*a.relaxed)

	if *a.interactive {
		runREPL(vm, lib)
		return
	}

	if *a.inputPath != "" {
		text, err := os.ReadFile(*a.inputPath)
		if err != nil {
			log.Fatalf("can't open input file: %s", err.Error())
		}
		handle, err := hostapi.Eval(context.Background(), vm, lib, hostapi.Arg{Text: string(text)})
		if err != nil {
			fmt.Println("ERROR: " + err.Error())
			os.Exit(1)
		}
		fmt.Println(core.MoldValue(vm, handle.Value()))
		return
	}

	flag.Usage()
	os.Exit(2)
}

func runREPL(vm *core.Interpreter, lib *core.Context) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if text == "" && err != nil {
			fmt.Println()
			return
		}
		if text == "\n" {
			continue
		}

		handle, err := hostapi.Eval(context.Background(), vm, lib, hostapi.Arg{Text: text})
		if err != nil {
			fmt.Println("ERROR: " + err.Error())
			continue
		}
		fmt.Println(core.MoldValue(vm, handle.Value()))
	}
}
