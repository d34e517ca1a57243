// Package main is the demonstration entry point for vex: a headless
// line-mode driver that feeds raw key events into the input-mode
// machine and prints buffer/selection state after each one. It is not a
// command-language parser — there is no `:`-prefixed syntax here, just a
// thin REPL for manual smoke-testing the core library, analogous to
// cmd/keystorm's entry point.
package main

import (
	"bufio"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/vexedit/vex/internal/applog"
	"github.com/vexedit/vex/internal/buffer"
	"github.com/vexedit/vex/internal/coord"
	"github.com/vexedit/vex/internal/hook"
	"github.com/vexedit/vex/internal/key"
	"github.com/vexedit/vex/internal/mode"
	"github.com/vexedit/vex/internal/register"
	"github.com/vexedit/vex/internal/selection"
)

// cliOptions holds the flags go-flags parses, in cmd/keystorm's style
// (flat struct, short+long forms, a usage string).
type cliOptions struct {
	File    string `short:"f" long:"file" description:"path of the file whose contents seed the buffer"`
	Name    string `long:"name" description:"buffer name reported by the % register" default:"*scratch*"`
	Debug   bool   `short:"d" long:"debug" description:"log debug-level messages, such as mode transitions"`
	Version bool   `short:"v" long:"version" description:"print version information and exit"`
}

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options]"
	if _, err := parser.Parse(); err != nil {
		return 1
	}
	if opts.Version {
		fmt.Printf("vex %s\n", version)
		return 0
	}

	log := applog.New(applog.DefaultConfig())
	if !opts.Debug {
		log.SetLevel(applog.Warn)
	}

	initial := ""
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vex: %v\n", err)
			return 1
		}
		initial = string(data)
	}

	buf := buffer.New(initial, buffer.WithName(opts.Name))
	sels := selection.NewList(coord.BufferCoord{}, buf.Timestamp())

	hooks := hook.NewManager(nil)
	regs := register.NewStore(&bufferSource{buf: buf, sels: sels})

	_ = hooks.AddHook(mode.HookInputModeChange, ".*", func(param string, ctx *mode.Context) error {
		log.Debugf("mode change: %s", param)
		return nil
	})

	var machine *mode.Machine
	machine = mode.NewMachine(mode.NewNormalMode(buildKeymap(buf, sels, log, &machine)))
	ctx := mode.NewContext(hooks, regs)

	fmt.Println("vex demonstration driver — type characters, Esc to leave insert mode, Ctrl-D to quit")
	printState(buf, sels)

	reader := bufio.NewReader(os.Stdin)
	for {
		ev, err := readKeyEvent(reader)
		if err != nil {
			break
		}
		dispatch(machine, ctx, ev)
		printState(buf, sels)
	}
	return 0
}

// dispatch forwards ev to the current mode, except for the keys
// InsertMode leaves to its caller: Escape always returns to whatever is
// beneath the current mode on the stack, and Ctrl-C does the same from
// insert mode, since InsertMode.HandleKey deliberately ignores both.
func dispatch(m *mode.Machine, ctx *mode.Context, ev key.Event) {
	if ev.Key == key.KeyEscape && m.Current().Kind() != mode.KindNormal {
		_ = m.Pop(ctx)
		return
	}
	if ev.IsRune() && ev.Rune == 'c' && ev.Modifiers.HasCtrl() && m.Current().Kind() == mode.KindInsert {
		_ = m.Pop(ctx)
		return
	}
	m.Current().HandleKey(ctx, ev)
}

func printState(buf *buffer.Buffer, sels *selection.List) {
	mainSel := sels.Main()
	text, err := buf.ContentRange(mainSel.Min(), mainSel.Max())
	if err != nil {
		text = ""
	}
	fmt.Printf("-- %d selection(s), main=%q --\n", sels.Len(), text)
}

// readKeyEvent decodes one rune of stdin into a key.Event. Only the
// control characters a terminal sends unescaped (Escape, Enter,
// Backspace, Tab, and Ctrl-letter) are recognized; arrow/function keys
// arrive as multi-byte escape sequences a real terminal backend would
// decode (tcell/termbox territory — UI, out of this module's scope) and
// are not handled here.
func readKeyEvent(r *bufio.Reader) (key.Event, error) {
	ru, _, err := r.ReadRune()
	if err != nil {
		return key.Event{}, err
	}
	switch ru {
	case '\x1b':
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
	case '\r', '\n':
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone), nil
	case '\x7f', '\b':
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone), nil
	case '\t':
		return key.NewSpecialEvent(key.KeyTab, key.ModNone), nil
	}
	if ru >= 1 && ru <= 26 {
		return key.NewRuneEvent(rune('a'+ru-1), key.ModCtrl), nil
	}
	return key.NewRuneEvent(ru, key.ModNone), nil
}
