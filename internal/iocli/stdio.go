package iocli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdio пишет в os.Stdout
type Stdio struct {
	out io.Writer
	fd  int
}

// NewStdio returns IO bound to the process stdout
func NewStdio() IO {
	return &Stdio{out: os.Stdout, fd: int(os.Stdout.Fd())}
}

// NewWriter returns IO writing to w; it never reports a terminal
func NewWriter(w io.Writer) IO {
	return &Stdio{out: w, fd: -1}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsTerminal() bool {
	return s.fd >= 0 && term.IsTerminal(s.fd)
}
