//go:build !windows
// +build !windows

package main

import (
	"os"
	"syscall"

	"golang.org/x/term"
)

// initialTermState is captured before any prompt runs so the terminal can
// be restored even if a prompt library left it in raw mode.
var initialTermState *term.State

func init() {
	if st, err := term.GetState(int(os.Stdin.Fd())); err == nil {
		initialTermState = st
	}
}

// drainStdin discards any bytes already queued in stdin. Terminals answer
// survey's cursor-position queries (\033[6n) with CPR sequences on stdin;
// left in place they show up as garbage in the next readline prompt.
func drainStdin() {
	fd := int(os.Stdin.Fd())
	if err := syscall.SetNonblock(fd, true); err != nil {
		return
	}
	defer func() { _ = syscall.SetNonblock(fd, false) }()

	buf := make([]byte, 64)
	for {
		n, err := syscall.Read(fd, buf)
		if n <= 0 || err != nil {
			break
		}
	}
	stdinReader.Reset(os.Stdin)
}

// restoreTTYOnExit puts the terminal back into its original mode. Called
// from the SIGINT handler, which may fire mid-prompt.
func restoreTTYOnExit() {
	if initialTermState != nil {
		_ = term.Restore(int(os.Stdin.Fd()), initialTermState)
	}
}
