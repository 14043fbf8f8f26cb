package main

import (
	"os"
	"sort"
	"time"
)

// trieNode is one node of the prefix tree (spec §3: "a prefix tree
// over single characters with an 'is end of word' flag per node").
type trieNode struct {
	children map[byte]*trieNode
	terminal bool
}

// Trie is populated at startup from built-in names and from every
// executable file discovered on PATH (spec §4.7).
type Trie struct {
	root *trieNode
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{children: map[byte]*trieNode{}}}
}

// Insert adds word to the trie.
func (t *Trie) Insert(word string) {
	node := t.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		next, ok := node.children[c]
		if !ok {
			next = &trieNode{children: map[byte]*trieNode{}}
			node.children[c] = next
		}
		node = next
	}
	node.terminal = true
}

// Matches returns every word in the trie with the given prefix, sorted
// lexicographically.
func (t *Trie) Matches(prefix string) []string {
	node := t.root
	for i := 0; i < len(prefix); i++ {
		next, ok := node.children[prefix[i]]
		if !ok {
			return nil
		}
		node = next
	}

	var matches []string
	var walk func(n *trieNode, acc string)
	walk = func(n *trieNode, acc string) {
		if n.terminal {
			matches = append(matches, prefix+acc)
		}
		for c, child := range n.children {
			walk(child, acc+string(c))
		}
	}
	walk(node, "")
	sort.Strings(matches)
	return matches
}

// longestCommonPrefix returns the longest common prefix of strs,
// adapted from the teacher's getLongestCommonPrefix (byte-wise,
// shortest-string bound).
func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		i := 0
		for i < len(prefix) && i < len(s) && prefix[i] == s[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

// CompletionEngine implements the Trie + LCP + double-tab algorithm of
// spec §4.5.
type CompletionEngine struct {
	trie *Trie

	lastLine string
	lastTime time.Time
}

// NewCompletionEngine builds an engine seeded from builtin names and
// every name exposed by bins.
func NewCompletionEngine(bins IPathBinManager) *CompletionEngine {
	trie := NewTrie()
	for name := range builtinNames {
		trie.Insert(name)
	}
	for name := range escapeWords {
		trie.Insert(name)
	}
	if bins != nil {
		for _, name := range bins.Names() {
			trie.Insert(name)
		}
	}
	return &CompletionEngine{trie: trie}
}

// CompletionResult is what the engine returns for a keystroke-driven
// completion request.
type CompletionResult struct {
	// Replacement, when non-empty, is the text that should replace the
	// current line's last word (a single match gets a trailing space;
	// an LCP-only extension does not).
	Replacement string
	// Bell is true when the terminal driver should ring the bell.
	Bell bool
	// Matches holds every candidate, populated only on the second tab
	// of an ambiguous completion, for column display.
	Matches []string
}

const doubleTabThreshold = time.Second

// Complete runs the algorithm of spec §4.5 for the current line (whose
// final whitespace-delimited word is the one being completed).
func (e *CompletionEngine) Complete(line string, word string, now time.Time) CompletionResult {
	matches := e.trie.Matches(word)

	if len(matches) == 0 {
		return CompletionResult{Bell: true}
	}

	if len(matches) == 1 {
		e.lastLine = ""
		return CompletionResult{Replacement: matches[0] + " "}
	}

	lcp := longestCommonPrefix(matches)
	if len(lcp) > len(word) {
		e.lastLine = ""
		return CompletionResult{Replacement: lcp}
	}

	// Ambiguous: LCP doesn't extend the input.
	isSecondTab := e.lastLine == line && now.Sub(e.lastTime) <= doubleTabThreshold
	if isSecondTab {
		e.lastLine = ""
		sort.Strings(matches)
		return CompletionResult{Matches: matches}
	}

	e.lastLine = line
	e.lastTime = now
	return CompletionResult{Bell: true}
}

// columnWidth and terminalColumns implement spec §6's layout rule:
// column width = max match length + 2; columns = floor(width/columnWidth).
func columnLayout(matches []string, terminalWidth int) (columnWidth int, columns int) {
	maxLen := 0
	for _, m := range matches {
		if len(m) > maxLen {
			maxLen = len(m)
		}
	}
	columnWidth = maxLen + 2
	if columnWidth == 0 {
		return 0, 1
	}
	columns = terminalWidth / columnWidth
	if columns < 1 {
		columns = 1
	}
	return columnWidth, columns
}

// FormatColumns renders matches in columns per columnLayout, one
// terminal row per returned string (without trailing newline).
func FormatColumns(matches []string, terminalWidth int) []string {
	if len(matches) == 0 {
		return nil
	}
	width, columns := columnLayout(matches, terminalWidth)

	var rows []string
	for i := 0; i < len(matches); i += columns {
		end := i + columns
		if end > len(matches) {
			end = len(matches)
		}
		row := ""
		for j := i; j < end; j++ {
			cell := matches[j]
			pad := width - len(cell)
			if pad < 0 {
				pad = 0
			}
			row += cell
			if j != end-1 {
				for k := 0; k < pad; k++ {
					row += " "
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ringBell writes the bell to stderr. Platform-specific bell behavior
// (a system sound API, a console beep command) is available in other
// environments; writing \x07 is the portable fallback used here since
// gosh's only supported terminal driver is the ANSI raw-mode one in
// main.go (spec §4.5: "otherwise write \x07 to stderr").
func ringBell() {
	os.Stderr.Write([]byte{0x07})
}
