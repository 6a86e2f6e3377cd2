package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/report"
)

// console prints command output, coloured only when writing to a terminal.
type console struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func newConsole(out, err io.Writer) *console {
	return &console{out: out, err: err, useColors: isTerminal(out)}
}

// isTerminal reports whether w is stdout and color has not been disabled
// (NO_COLOR, TERM=dumb or a non-TTY stdout).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

func (c *console) Success(format string, args ...interface{}) {
	if c.useColors {
		color.New(color.FgGreen).Fprintf(c.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(c.out, "[OK] "+format+"\n", args...)
	}
}

func (c *console) Warning(format string, args ...interface{}) {
	if c.useColors {
		color.New(color.FgYellow).Fprintf(c.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(c.err, "[WARN] "+format+"\n", args...)
	}
}

func (c *console) Print(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Report prints the text report with bold headings.
func (c *console) Report(res *app.Result) {
	if !c.useColors {
		fmt.Fprint(c.out, report.FormatText(res))
		return
	}
	fmt.Fprint(c.out, report.RenderText(res, report.Style{
		Title:    color.New(color.FgWhite, color.Bold).SprintFunc(),
		Category: color.New(color.FgCyan, color.Bold).SprintFunc(),
		Label:    color.New(color.Bold).SprintFunc(),
	}))
}
