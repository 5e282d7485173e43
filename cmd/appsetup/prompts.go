package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2"
	"github.com/chzyer/readline"
)

// ─── Plain I/O helpers (no survey — avoids terminal cursor-position queries) ──

// stdinReader is the single shared buffered reader over os.Stdin.
// One instance is required — multiple buffered readers over the same fd
// would each buffer ahead and consume each other's input.
var stdinReader = bufio.NewReader(os.Stdin)
var ansiEscapeRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
var caretEscapeRE = regexp.MustCompile(`\^\[\[[0-9;?]*[ -/]*[@-~]`)

// readLine prints "  Field [current]: " and reads a line.
// Returns current if the user presses Enter without typing anything.
func readLine(field, current string) string {
	prompt := ""
	if current != "" {
		prompt = fmt.Sprintf("  %s [\033[36m%s\033[0m]: ", field, current)
	} else {
		prompt = fmt.Sprintf("  %s: ", field)
	}
	s := readPromptLine(prompt)
	if s == "" {
		return current
	}
	return s
}

// readYesNo prints "  msg [Y/n]: " and returns true for y/yes, false for n/no.
func readYesNo(msg string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	for {
		s := strings.ToLower(readPromptLine(fmt.Sprintf("  %s %s: ", msg, hint)))
		if s == "" {
			return defaultYes
		}
		if s == "y" || s == "yes" {
			return true
		}
		if s == "n" || s == "no" {
			return false
		}
		fmt.Println("  Enter y or n")
	}
}

// readYesNoDanger is for destructive actions.
// It highlights the prompt in red and defaults to No.
func readYesNoDanger(msg string) bool {
	return readYesNo("\033[31m"+msg+"\033[0m", false)
}

func readPromptLine(prompt string) string {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err == nil {
		cleanup := func() {
			_ = rl.Close()
			stdinReader.Reset(os.Stdin)
		}
		line, err := rl.Readline()
		if err == nil {
			cleanup()
			return strings.TrimSpace(line)
		}
		if errors.Is(err, readline.ErrInterrupt) {
			// Restore terminal before signal handler (it may os.Exit immediately).
			cleanup()
			if p, findErr := os.FindProcess(os.Getpid()); findErr == nil {
				_ = p.Signal(os.Interrupt)
			}
			return ""
		}
		cleanup()
		return ""
	}

	fmt.Print(prompt)
	line, _ := stdinReader.ReadString('\n')
	return sanitizeConsoleInput(line)
}

func sanitizeConsoleInput(raw string) string {
	raw = ansiEscapeRE.ReplaceAllString(raw, "")
	raw = caretEscapeRE.ReplaceAllString(raw, "")
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(raw)
}

// surveySelect wraps survey.AskOne for a Select prompt and calls drainStdin()
// afterward to discard any CPR responses (\033[row;colR) that the terminal
// may have queued in stdin in response to survey's \033[6n cursor queries.
// Without this drain, those responses appear as garbage in subsequent readLine calls.
func surveySelect(q *survey.Select, response *string) {
	_ = survey.AskOne(q, response)
	drainStdin()
}
