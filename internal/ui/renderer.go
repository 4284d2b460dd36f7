package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Renderer handles human-facing terminal output. It never writes to
// stdout, which is reserved for result documents.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a Renderer writing to stderr
func NewRenderer() *Renderer {
	return &Renderer{out: os.Stderr}
}

// NewRendererTo creates a Renderer writing to w
func NewRendererTo(w io.Writer) *Renderer {
	return &Renderer{out: w}
}

// Colors
var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Success prints a success message
func (r *Renderer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", green("✓"), msg)
}

// Error prints an error message
func (r *Renderer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", red("✗"), msg)
}

// Warning prints a warning message
func (r *Renderer) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", yellow("!"), msg)
}

// Info prints an info message
func (r *Renderer) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "  %s\n", msg)
}

// Dim prints dimmed/secondary text
func (r *Renderer) Dim(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "  %s\n", dim(msg))
}

// Heading prints a bold section title
func (r *Renderer) Heading(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "\n%s\n", bold(msg))
}
