// Package view provides output formatting for galup commands.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Renderer writes command output, optionally colored.
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer writing to stdout.
func NewRenderer(noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders rows as a table with columns padded to equal width.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	printRow := func(row []string) {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			if i < len(row)-1 {
				val += strings.Repeat(" ", widths[i]-len(val))
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}

	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintln(r.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(r.writer, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, "✗ "+msg)
}
