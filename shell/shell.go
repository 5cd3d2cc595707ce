// Package shell is an interactive crapette console: deal or load a
// position, ask the brain for its moves, and play turns one at a time.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/config"
	"github.com/domino14/crapette/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errNoGame            = errors.New("no game in progress; use new, layout or load")
	errQuit              = errors.New("quit")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	cfg     *config.Config
	colored bool

	game *game.Game
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// Response is what a command prints.
type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config, colored bool, out io.Writer) *ShellController {
	return &ShellController{cfg: cfg, colored: colored, out: out}
}

// NewShellController sets up the readline prompt. The history is kept in
// the system temp directory.
func NewShellController(cfg *config.Config, colored bool) (*ShellController, error) {
	prompt := "crapette> "
	if colored {
		prompt = "\033[32mcrapette>\033[0m "
	}
	sc := newController(cfg, colored, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         os.TempDir() + "/crapette_readline.tmp",
		AutoComplete:        NewShellCompleter(sc),
		EOFPrompt:           "exit",
		InterruptPrompt:     "^C",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its arguments and its
// "-key value" options. Quoting follows the shell.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "-") || len(f) == 1 {
			cmd.args = append(cmd.args, f)
			continue
		}
		if i+1 == len(fields) {
			return nil, errWrongOptionSyntax
		}
		cmd.options[f[1:]] = fields[i+1]
		i++
	}
	return cmd, nil
}

// Execute runs one line. It returns errQuit for exit.
func (sc *ShellController) Execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.dispatch(ctx, cmd)
}

func (sc *ShellController) dispatch(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "bye", "quit":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "layout":
		return sc.layout(cmd)
	case "load":
		return sc.load(cmd)
	case "show":
		return sc.show(cmd)
	case "solve":
		return sc.solve(ctx, cmd)
	case "play":
		return sc.play(ctx, cmd)
	case "move":
		return sc.move(cmd)
	case "moves":
		return sc.legalMoves(cmd)
	case "history":
		return sc.history(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(ctx, cmd)
	case "script":
		return sc.script(cmd)
	}
	log.Info().Msgf("command %q not found", cmd.cmd)
	return nil, nil
}

// Loop reads commands until exit or end of input. An interrupt while a
// command runs cancels it.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		stop := make(chan struct{})
		go func() {
			select {
			case <-sig:
				cancel()
			case <-stop:
			}
		}()
		resp, err := sc.Execute(ctx, line)
		close(stop)
		cancel()

		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting readline loop")
}
