package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const prompt = "$ "

// TermState holds the raw-mode line editor's state across keystrokes,
// grounded on the teacher's own hand-rolled InteractiveMode loop.
type TermState struct {
	currentCommand []rune
	index          int
	readBuffer     []byte
	oldState       *term.State

	history      []string
	historyIndex int

	hist       *HistoryStore
	bins       IPathBinManager
	completion *CompletionEngine
	exec       *Executor
}

func main() {
	homeDir := resolveHomeDir()
	histPath := resolveHistFile()

	hist, err := NewHistoryStore(histPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	sharedHistory = hist

	var bins IPathBinManager
	if pathIsSet() {
		bins = NewPathBinManager()
	}
	sharedBins = bins

	completion := NewCompletionEngine(bins)

	output := &Output{Stdout: os.Stdout, Stderr: os.Stderr}
	executor := &Executor{Bins: bins, Output: output, Stdin: os.Stdin}

	state := &TermState{
		readBuffer: make([]byte, 1024),
		hist:       hist,
		bins:       bins,
		completion: completion,
		exec:       executor,
	}

	state.InteractiveMode(homeDir)
}

// exitShell flushes the session's new history to the configured file
// and terminates with the exit group's contract (spec §4.6).
func exitShell(histPath string, hist *HistoryStore) {
	code := 0
	if err := hist.FlushBaselineTail(histPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		code = 1
	}
	os.Exit(code)
}

func (state *TermState) clearToPrompt() {
	fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1)
	fmt.Fprintf(os.Stdout, "\033[K")
}

// InteractiveMode runs the main loop: raw-mode keystroke editing with
// history navigation and tab completion, dispatching each submitted
// line through the tokenizer/parser/executor pipeline (spec §4.7).
func (state *TermState) InteractiveMode(homeDir string) {
	oldState, err := term.MakeRaw(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting terminal to raw mode: %s\n", err)
		os.Exit(1)
	}
	state.oldState = oldState
	defer term.Restore(0, oldState)

	state.printPrompt()

	for {
		n, err := os.Stdin.Read(state.readBuffer)
		if err != nil {
			term.Restore(0, state.oldState)
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %s\n", err)
			os.Exit(1)
		}

		i := 0
		for i < n {
			c := state.readBuffer[i]
			i++

			switch {
			case c == 1: // Ctrl-A
				fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1)
				state.index = 0
			case c == 2: // Ctrl-B
				if state.index > 0 {
					state.index--
					fmt.Fprintf(os.Stdout, "\033[D")
				}
			case c == 3 || c == 4: // Ctrl-C / Ctrl-D
				fmt.Fprintf(os.Stdout, "\r\n")
				term.Restore(0, state.oldState)
				exitShell(resolveHistFile(), state.hist)
			case c == 5: // Ctrl-E
				fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1+len(state.currentCommand))
				state.index = len(state.currentCommand)
			case c == 6: // Ctrl-F
				if state.index < len(state.currentCommand) {
					state.index++
					fmt.Fprintf(os.Stdout, "\033[C")
				}
			case c == 9: // Tab
				state.handleTab()
			case c == 11: // Ctrl-K
				fmt.Fprintf(os.Stdout, "\033[K")
				state.currentCommand = state.currentCommand[:state.index]
			case c == 13: // Enter
				state.submitLine()
			case c == 21: // Ctrl-U
				fmt.Fprintf(os.Stdout, "\033[%dG\033[K", len(prompt)+1)
				state.currentCommand = state.currentCommand[state.index:]
				fmt.Fprintf(os.Stdout, "%s", string(state.currentCommand))
				fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1)
				state.index = 0
			case c == 23: // Ctrl-W
				state.eraseLastWord()
			case c == 27 && i < n: // Escape sequences (arrows)
				i = state.handleEscape(i, n)
			case c > 32 && c <= 126:
				state.insertChar(rune(c))
			case c == 32:
				state.insertChar(' ')
			case c == 127: // Backspace
				state.backspace()
			}
		}
	}
}

func (state *TermState) insertChar(c rune) {
	fmt.Fprintf(os.Stdout, "\033[K")
	fmt.Fprintf(os.Stdout, "%c", c)
	fmt.Fprintf(os.Stdout, "%s", string(state.currentCommand[state.index:]))
	fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1+state.index+1)

	tail := append([]rune{c}, state.currentCommand[state.index:]...)
	state.currentCommand = append(state.currentCommand[:state.index], tail...)
	state.index++
}

func (state *TermState) backspace() {
	if state.index == 0 {
		return
	}
	state.currentCommand = append(state.currentCommand[:state.index-1], state.currentCommand[state.index:]...)
	state.index--

	fmt.Fprintf(os.Stdout, "\033[D\033[K")
	fmt.Fprintf(os.Stdout, "%s", string(state.currentCommand[state.index:]))
	fmt.Fprintf(os.Stdout, "\033[%dG", len(prompt)+1+state.index)
}

func (state *TermState) eraseLastWord() {
	if state.index == 0 {
		return
	}
	for state.index > 0 && state.currentCommand[state.index-1] == ' ' {
		state.index--
	}
	for state.index > 0 && state.currentCommand[state.index-1] != ' ' {
		state.index--
	}
	fmt.Fprintf(os.Stdout, "\033[%dG\033[K", len(prompt)+1+state.index)
	state.currentCommand = state.currentCommand[:state.index]
}

// handleEscape consumes an arrow-key sequence starting right after the
// ESC byte at readBuffer[i] and returns the updated read index.
func (state *TermState) handleEscape(i, n int) int {
	if i >= n || state.readBuffer[i] != 91 { // not '['
		return i
	}
	i++
	if i >= n {
		return i
	}
	c := state.readBuffer[i]
	i++

	switch c {
	case 65: // Up
		state.navigateHistory(1)
	case 66: // Down
		state.navigateHistory(-1)
	case 67: // Right
		if state.index < len(state.currentCommand) {
			state.index++
			fmt.Fprintf(os.Stdout, "\033[C")
		}
	case 68: // Left
		if state.index > 0 {
			state.index--
			fmt.Fprintf(os.Stdout, "\033[D")
		}
	}
	return i
}

func (state *TermState) navigateHistory(delta int) {
	if delta > 0 { // up
		if state.historyIndex >= len(state.history) {
			return
		}
		state.historyIndex++
	} else { // down
		if state.historyIndex <= 0 {
			return
		}
		state.historyIndex--
	}

	state.clearToPrompt()
	if state.historyIndex == 0 {
		state.currentCommand = nil
		state.index = 0
		return
	}
	line := state.history[len(state.history)-state.historyIndex]
	fmt.Fprintf(os.Stdout, "%s", line)
	state.currentCommand = []rune(line)
	state.index = len(state.currentCommand)
}

// handleTab runs the completion engine against the current line's
// final word (spec §4.5).
func (state *TermState) handleTab() {
	line := string(state.currentCommand)
	word := lastWord(line)

	res := state.completion.Complete(line, word, time.Now())

	if len(res.Matches) > 0 {
		fmt.Fprintf(os.Stdout, "\r\n")
		width := terminalWidth()
		for _, row := range FormatColumns(res.Matches, width) {
			fmt.Fprintf(os.Stdout, "%s\r\n", row)
		}
		state.printPrompt()
		fmt.Fprintf(os.Stdout, "%s", line)
		state.index = len(state.currentCommand)
		return
	}

	if res.Bell {
		ringBell()
		return
	}

	if res.Replacement != "" {
		start := state.index - len(word)
		newLine := line[:start] + res.Replacement + line[state.index:]
		state.clearToPrompt()
		fmt.Fprintf(os.Stdout, "%s", newLine)
		state.currentCommand = []rune(newLine)
		state.index = start + len(res.Replacement)
	}
}

func lastWord(line string) string {
	idx := strings.LastIndexAny(line, " \t")
	return line[idx+1:]
}

func terminalWidth() int {
	w, _, err := term.GetSize(0)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// submitLine tokenizes, parses, and executes the current command, then
// redisplays the prompt (spec §4.7).
func (state *TermState) submitLine() {
	line := string(state.currentCommand)

	fmt.Fprintf(os.Stdout, "\r\n")
	state.currentCommand = state.currentCommand[:0]
	state.index = 0

	if line != "" {
		state.history = append(state.history, line)
		state.hist.Append(line)
	}
	state.historyIndex = 0

	term.Restore(0, state.oldState)

	state.dispatch(line)

	oldState, err := term.MakeRaw(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting terminal to raw mode: %s\n", err)
		os.Exit(1)
	}
	state.oldState = oldState
	state.printPrompt()
}

// dispatch runs one line through the lexer/parser/executor. Escape
// words are handled here rather than in the executor, since only the
// main loop may flush history and terminate the process.
func (state *TermState) dispatch(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	lex := NewLexer(line, resolveHomeDir())
	tokens := lex.Tokenize()

	parser := NewParser(line, tokens)
	pipeline, err := parser.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return
	}

	if len(pipeline.Stages) == 1 {
		name := pipeline.Stages[0].Argv[0]
		if escapeWords[name] {
			exitShell(resolveHistFile(), state.hist)
			return
		}
	}

	state.exec.Run(pipeline)
}

// printPrompt writes the fixed "$ " prompt (spec §6).
func (state *TermState) printPrompt() {
	fmt.Fprintf(os.Stdout, "%s", prompt)
}
