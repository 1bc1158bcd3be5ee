package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalConfirmer asks on the terminal. Without a TTY it declines, so
// scripted deletions need --yes.
type TerminalConfirmer struct {
	in  *os.File
	out io.Writer
}

func NewTerminalConfirmer(in *os.File, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: in, out: out}
}

func (t *TerminalConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if !term.IsTerminal(int(t.in.Fd())) {
		return false, nil
	}

	_, _ = fmt.Fprintf(t.out, "%s [y/N] ", prompt)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(t.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
