// Package printer writes styled, human-facing messages. Command output meant
// for pipes (tables, JSON) goes straight to the command's writer instead.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;247;118;142m" // #f7768e
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
	Arrow = "→"
)

type ctxKey struct{}

// Printer writes one styled line per message.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError prints err in a box. It does not exit; the caller owns the exit
// code. Validation failures list one line per field.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		p.box("Error", []string{paint(ColorGray, err.Error())})
		return
	}

	var lines []string
	if prefix := errorPrefix(err, fieldErrs); prefix != "" {
		lines = append(lines, paint(ColorGray, prefix), "")
	}
	for _, fe := range fieldErrs {
		line := paint(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += paint(ColorGray, fe.Field+": ")
		}
		lines = append(lines, line+fe.Err.Error())
	}

	p.box("Validation Error", lines)
}

// errorPrefix returns the wrapping context in front of the field errors,
// e.g. "add artwork" for "add artwork: title: value is required".
func errorPrefix(err error, fieldErrs criterio.FieldErrors) string {
	full, inner := err.Error(), fieldErrs.Error()
	idx := strings.Index(full, inner)
	if idx <= 0 {
		return ""
	}
	return strings.TrimSuffix(full[:idx], ": ")
}

func (p *Printer) box(title string, lines []string) {
	var b strings.Builder
	b.WriteString(paint(ColorRed, "╭ "+title) + "\n")
	for _, line := range lines {
		b.WriteString(paint(ColorRed, "│"))
		if line != "" {
			b.WriteString(" " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(paint(ColorRed, "╵") + "\n")
	_, _ = io.WriteString(p.w, b.String())
}

func (p *Printer) line(color, symbol, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(p.w, paint(color, symbol+" "+msg)+"\n")
}

// Errorf prints a red message.
func (p *Printer) Errorf(format string, args ...any) { p.line(ColorRed, Cross, format, args...) }

// Successf prints a green message.
func (p *Printer) Successf(format string, args ...any) { p.line(ColorGreen, Check, format, args...) }

// Infof prints a gray message.
func (p *Printer) Infof(format string, args ...any) { p.line(ColorGray, Dot, format, args...) }

// Warnf prints a yellow message.
func (p *Printer) Warnf(format string, args ...any) { p.line(ColorYellow, Dot, format, args...) }

// Hintf prints a suggested next step, e.g. a command to run.
func (p *Printer) Hintf(format string, args ...any) { p.line(ColorGray, Arrow, format, args...) }

// Changef prints the outcome of a catalog change followed by the size of the
// catalog afterwards.
func (p *Printer) Changef(count int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := paint(ColorGreen, Check+" "+msg) + " " + paint(ColorGray, Plural(count, "artwork")+" in catalog")
	_, _ = io.WriteString(p.w, line+"\n")
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Section prints a bold, underlined heading.
func (p *Printer) Section(title string) {
	_, _ = io.WriteString(p.w, ColorBold+ColorUnderline+title+ColorReset+"\n")
}

// CheckItem, WarnItem and FailItem print an indented doctor line.
func (p *Printer) CheckItem(label, detail string) { p.item(ColorGreen, Check, label, detail) }

func (p *Printer) WarnItem(label, detail string) { p.item(ColorYellow, Dot, label, detail) }

func (p *Printer) FailItem(label, detail string) { p.item(ColorRed, Cross, label, detail) }

func (p *Printer) item(color, symbol, label, detail string) {
	line := "  " + paint(color, symbol) + " " + label
	if detail != "" {
		line += ": " + paint(ColorGray, detail)
	}
	_, _ = io.WriteString(p.w, line+"\n")
}

// Plural formats n with noun, adding an s when n is not 1.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// StatusOK and StatusWarn render a table cell. Both carry the same escape
// sequences so tabwriter columns stay aligned.
func StatusOK() string {
	return paint(ColorGreen, Check) + " ok"
}

func StatusWarn(msg string) string {
	return paint(ColorYellow, Dot) + " " + msg
}

func paint(color, text string) string {
	return color + text + ColorReset
}
