package explorer

import (
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/gravures/tomlraider/internal/formatter"
	"github.com/gravures/tomlraider/internal/raider"
)

// Options configure an explorer session.
type Options struct {
	NoColor   bool
	SortOrder formatter.SortOrder
	// Width/Height of 0 auto-detect the terminal size.
	Width  int
	Height int
}

// Hooks for tests.
var (
	stdinIsPiped = func() bool {
		stat, _ := os.Stdin.Stat()
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
	openTerminalIOFn = openTerminalIO
)

// Run starts the interactive browser over root and blocks until the
// user quits.
func Run(root raider.Document, opts Options) error {
	m := NewModel(root, opts.SortOrder, opts.NoColor)

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	m.SetSize(width, height)

	progOpts, cleanup := programOptions()
	defer cleanup()
	if opts.Width > 0 && opts.Height > 0 {
		progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))
	}

	prog := tea.NewProgram(m, progOpts...)
	_, err := prog.Run()
	return err
}

// programOptions reopens the real terminal devices when stdin is a
// pipe. The document arrives on stdin in the default pipeline usage
// (`tomlraider -i < pyproject.toml`), leaving the pipe drained and
// non-interactive; key events must come from the terminal instead.
// When no terminal is available (CI), it falls back to the default
// input and the browser stays view-only.
func programOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}
