package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"nex/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderCheckLine(result preflight.Result, colorize bool) string {
	label, color := "OK", ansiGreen
	if !result.Passed {
		label, color = "ERROR", ansiRed
	}
	base := fmt.Sprintf("%s%-*s [%s] %s", statusIndent, statusLabelWidth, result.Name+":", label, result.Detail)
	return colorText(base, color, colorize)
}

func colorText(s, color string, colorize bool) string {
	if !colorize || color == "" {
		return s
	}
	return color + s + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
