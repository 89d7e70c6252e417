package models

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// Picker selects exactly one model from an ordered list. Implementations
// cover interactive terminals and piped stdin so the two can be swapped
// without the caller caring which one it got.
type Picker interface {
	Pick(list []string) (string, error)
}

// NewPicker returns the readline-backed picker on a terminal and the
// line-oriented fallback everywhere else.
func NewPicker() Picker {
	if readline.DefaultIsTerminal() {
		return &ReadlinePicker{}
	}
	return &FallbackPicker{In: os.Stdin, Out: os.Stderr}
}

// ReadlinePicker prompts on the terminal with tab completion over the
// model list. Prefix matching is case-sensitive. An exact match is
// accepted immediately, a unique prefix completes to its match, and empty
// or ambiguous input re-prompts with the candidate set.
type ReadlinePicker struct{}

// Pick runs the interactive selection loop.
func (p *ReadlinePicker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", fmt.Errorf("%w: empty model list", ErrSelection)
	}

	items := make([]readline.PrefixCompleterInterface, len(list))
	for i, m := range list {
		items[i] = readline.PcItem(m)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "model> ",
		AutoComplete:    readline.NewPrefixCompleter(items...),
		HistoryFile:     historyFilePath(),
		HistoryLimit:    200,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return "", fmt.Errorf("%w: initializing readline: %v", ErrSelection, err)
	}
	defer rl.Close()

	fmt.Println("Available models:")
	for _, m := range list {
		fmt.Printf(" - %s\n", m)
	}
	fmt.Println("Enter model (TAB completes):")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return "", fmt.Errorf("%w: selection aborted", ErrSelection)
			}
			return "", fmt.Errorf("%w: reading input: %v", ErrSelection, err)
		}

		input := strings.TrimSpace(line)
		if model, ok := Resolve(list, input); ok {
			return model, nil
		}

		if c := Candidates(list, input); len(c) > 1 {
			fmt.Printf("Ambiguous: %s\n", strings.Join(c, ", "))
		} else if input != "" {
			fmt.Printf("No model matches %q\n", input)
		}
	}
}

// FallbackPicker handles non-interactive stdin. It announces the degraded
// mode, reads a single line, and requires an exact full-string match; an
// empty line selects the first entry.
type FallbackPicker struct {
	In  io.Reader
	Out io.Writer
}

// Pick reads one line and resolves it with exact-match rules.
func (p *FallbackPicker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", fmt.Errorf("%w: empty model list", ErrSelection)
	}

	fmt.Fprintf(p.Out, "stdin is not a terminal; interactive completion disabled\n")
	fmt.Fprintf(p.Out, "expecting an exact model name on one line (empty selects %q)\n", list[0])

	var line string
	if _, err := fmt.Fscanln(p.In, &line); err != nil && err != io.EOF {
		// Fscanln errors on an empty line with "unexpected newline"; that
		// and EOF both mean "take the default".
		if !strings.Contains(err.Error(), "newline") {
			return "", fmt.Errorf("%w: reading input: %v", ErrSelection, err)
		}
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return list[0], nil
	}
	for _, m := range list {
		if m == input {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not in the model list", ErrSelection, input)
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "threadsum_history")
	}
	return filepath.Join(home, ".threadsum_history")
}
