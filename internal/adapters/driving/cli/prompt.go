package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers from the command's input.
type prompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

//nolint:errcheck // CLI helper, error ignored for UX
func (p *prompter) line(question string) string {
	p.cmd.Print(question)
	input, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// confirm accepts s/sim/y/yes; anything else is no.
func (p *prompter) confirm(question string) bool {
	switch strings.ToLower(p.line(question + " [s/N]: ")) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

// secret reads without echo when the input is a terminal.
func (p *prompter) secret(question string) string {
	p.cmd.Print(question)
	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		p.cmd.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	input, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(input)
}

// thousandsOnly matches "1.234" or "1.234.567": dots that can only be
// thousands separators.
var thousandsOnly = regexp.MustCompile(`^[0-9]{1,3}(?:\.[0-9]{3})+$`)

// parseAmount reads "1.234,56", "1234,56", "1.234" or "1234.56".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("valor inválido: %q", s)
	}
	return v, nil
}

func maskSecret(s string) string {
	if s == "" {
		return "(não definido)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
