package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// prompter reads form input. Secrets are read without echo when the input
// is a terminal.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{reader: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// line prints label and reads one trimmed line. A final line without a
// newline is still returned.
func (p *prompter) line(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// secret reads a password. The value is not trimmed.
func (p *prompter) secret(label string) (string, error) {
	if !p.tty {
		if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
			return "", err
		}
		line, err := p.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// multiline reads lines until an empty one and joins them with '\n'.
func (p *prompter) multiline(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s (press Enter on an empty line to finish)\n", label); err != nil {
		return "", err
	}
	var lines []string
	for {
		line, err := p.reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
