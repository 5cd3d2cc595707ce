package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/config"
)

// ShellCompleter completes command names, sample layouts and settings.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

var commandNames = []string{
	"new", "layout", "load", "show", "solve", "play", "move", "moves", "history",
	"set", "autoplay", "script", "help", "exit",
}

var settingNames = []string{
	config.ConfigBrainShortcut,
	config.ConfigBrainFilterOrigins,
	config.ConfigBrainFilterOriginsAggressive,
	config.ConfigBrainMono,
	config.ConfigBrainReproducible,
	config.ConfigBrainPrintProgress,
	config.ConfigTraceDir,
	config.ConfigAutoplayGames,
	config.ConfigAutoplayThreads,
	config.ConfigAutoplayMaxTurns,
	config.ConfigAutoplaySeedFile,
	config.ConfigAutoplayOutput,
	config.ConfigSeed,
}

var boolValues = []string{"true", "false"}

func (c *ShellCompleter) candidates(fields []string) []string {
	switch fields[0] {
	case "layout":
		if len(fields) == 1 {
			return lo.Map(board.SampleLayouts(), func(n board.LayoutName, _ int) string {
				return string(n)
			})
		}
	case "set":
		if len(fields) == 1 {
			return settingNames
		}
		if len(fields) == 2 && strings.HasPrefix(fields[1], "brain-") {
			return boolValues
		}
	case "help":
		if len(fields) == 1 {
			return []string{"layout", "load", "move", "set", "autoplay", "script"}
		}
	case "autoplay":
		return []string{"-threads", "-file"}
	}
	return nil
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	if len(fields) > 0 && !endsWithSpace {
		prefix = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}

	completions := commandNames
	if len(fields) > 0 {
		completions = c.candidates(fields)
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]+" "))
		}
	}
	return matches, len([]rune(prefix))
}
