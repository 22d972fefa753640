// Package console prints the status lines and boxed banners used by the
// non-interactive commands, and asks yes/no questions.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/manifoldco/promptui"
)

// Colors for terminal output
const (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorNC     = "\033[0m" // No Color
)

const bannerWidth = 44

// Printer writes command output. Colors are dropped when Plain is set.
type Printer struct {
	Out   io.Writer
	Plain bool
}

// Stdout returns a printer writing colored output to stdout
func Stdout() *Printer {
	return &Printer{Out: os.Stdout}
}

func (p *Printer) color(c string) (string, string) {
	if p.Plain {
		return "", ""
	}
	return c, colorNC
}

// Banner prints a boxed title
func (p *Printer) Banner(title string) {
	p.box(colorBlue, title)
}

// Completion prints a boxed success message
func (p *Printer) Completion(msg string) {
	p.box(colorGreen, msg)
}

func (p *Printer) box(c, text string) {
	start, end := p.color(c)
	pad := bannerWidth - utf8.RuneCountInString(text)
	if pad < 2 {
		pad = 2
	}
	left := pad / 2
	right := pad - left

	fmt.Fprintln(p.Out)
	fmt.Fprintf(p.Out, "%s╔%s╗%s\n", start, strings.Repeat("═", bannerWidth), end)
	fmt.Fprintf(p.Out, "%s║%s%s%s║%s\n", start, strings.Repeat(" ", left), text, strings.Repeat(" ", right), end)
	fmt.Fprintf(p.Out, "%s╚%s╝%s\n", start, strings.Repeat("═", bannerWidth), end)
	fmt.Fprintln(p.Out)
}

func (p *Printer) Info(format string, args ...interface{}) {
	p.line(colorBlue, "ℹ", format, args...)
}

func (p *Printer) Success(format string, args ...interface{}) {
	p.line(colorGreen, "✓", format, args...)
}

func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(colorYellow, "⚠", format, args...)
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.line(colorRed, "✗", format, args...)
}

// Field prints an indented "label: value" row
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.Out, "  %-12s %s\n", label+":", value)
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.Out, a...)
}

func (p *Printer) line(c, symbol, format string, args ...interface{}) {
	start, end := p.color(c)
	fmt.Fprintf(p.Out, "%s%s%s %s\n", start, symbol, end, fmt.Sprintf(format, args...))
}

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(label string) (bool, error)
}

// PromptConfirmer asks on the terminal. Anything but y/yes is a no.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return IsYes(result), nil
}

// AlwaysYes skips the question, used for --yes and --force
type AlwaysYes struct{}

func (AlwaysYes) Confirm(string) (bool, error) {
	return true, nil
}

// IsYes reports whether an answer means yes
func IsYes(answer string) bool {
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
