// Command self is a minimal read-eval-print loop over the interpreter
// (§6.5): read a line, execute it, send printString to the result, print
// it or a failure marker.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/selflang/selfvm"
)

func main() {
	eval := flag.String("e", "", "evaluate one expression and exit")
	interactive := flag.Bool("i", false, "force interactive prompts even when stdin is not a terminal")
	flag.Parse()

	vm := self.NewVM()

	if *eval != "" {
		result, err := vm.Execute(*eval)
		fmt.Println(renderResult(vm, result, err))
		return
	}

	prompt := *interactive || isTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if prompt {
			fmt.Print("self> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := vm.Execute(line)
		fmt.Println(renderResult(vm, result, err))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

// renderResult implements the "send printString, print it, or a marker"
// half of the REPL boundary.
func renderResult(vm *self.VM, result *self.Object, err error) string {
	if err != nil {
		return err.Error()
	}
	printed, perr := vm.Send("printString", result)
	if perr != nil {
		return fmt.Sprintf("%s <no printString>", result)
	}
	if printed.Kind() != self.StringKind {
		return fmt.Sprintf("%s <printString is not a string>", result)
	}
	return printed.Str()
}
