package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped out in tests
var readPassword = term.ReadPassword

// prompter asks for missing values. Usernames and passwords are used exactly
// as typed apart from the line ending.
type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal to read secrets from, or -1 when in is not one
	fd int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads without echo on a terminal and falls back to a plain line
// when input is redirected
func (p *prompter) secret(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	b, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// fill prompts for value when it was not given as a flag
func (p *prompter) fill(value *string, label string, hidden bool) error {
	if *value != "" {
		return nil
	}
	var err error
	if hidden {
		*value, err = p.secret(label)
	} else {
		*value, err = p.line(label)
	}
	return err
}
