// Command lineeditdemo is a minimal interactive driver for the lineedit
// package: a single-line prompt with tab completion against a small word
// list, reading raw bytes from stdin and writing frames to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dpaneser/lineedit"
	"github.com/dpaneser/lineedit/internal/demoeditor"
	"github.com/dpaneser/lineedit/internal/fuzzycomplete"
)

var words = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lineeditdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})

	tty, err := demoeditor.NewRawTTY()
	if err != nil {
		return err
	}
	defer tty.Close() //nolint:errcheck

	src, err := lineedit.NewByteBuffer(os.Stdin)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	cfg := lineedit.DefaultConfig()
	dec := lineedit.NewDecoder(src, cfg, logger)

	sink := demoeditor.NewSink(os.Stdout, demoeditor.TerminalWidth)
	editor := demoeditor.NewEditor("> ", sink)
	gen := fuzzycomplete.New(words)
	var list lineedit.CandidateList

	editor.WritePrompt()
	for {
		key, err := dec.ReadKey()
		if err != nil {
			fmt.Fprintln(os.Stdout)
			return err
		}

		switch {
		case key == lineedit.KeyEnter:
			fmt.Fprint(os.Stdout, "\r\n")
			fmt.Fprintf(os.Stdout, "you typed: %s\r\n", editor.Input())
			editor.SetInput(nil)
			editor.SetPos(0)
			editor.WritePrompt()
		case key == lineedit.KeyTab:
			if err := lineedit.TriggerCompletion(dec, gen, &list, sink, editor); err != nil {
				return err
			}
		case key == lineedit.KeyChar('c').With(lineedit.ModCtrl):
			fmt.Fprintln(os.Stdout)
			return nil
		case key == lineedit.KeySpace:
			editor.InsertRune(' ')
		case key.IsChar():
			editor.InsertRune(key.Base())
		default:
			sink.Beep()
		}
	}
}
