package logger

import (
	"io"
	"os"

	"github.com/fatih/color"    // Colourised console output, one colour per level
	"github.com/mattn/go-isatty" // Detects whether stderr is a real terminal
)

// Colour definitions for each log level. They are kept separate from the
// printing functions so colour can be switched off per stream without touching
// the global color.NoColor switch (stdout output is rendered elsewhere).
var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// output is where every log line goes. Logs are written to stderr so that
// listings printed on stdout can be piped without noise.
var output io.Writer = os.Stderr

// Info logs informational messages in green color.
var Info = func(format string, a ...any) {
	_, _ = infoColor.Fprintf(output, format, a...)
}

// Warn logs warning messages in bright magenta color.
var Warn = func(format string, a ...any) {
	_, _ = warnColor.Fprintf(output, format, a...)
}

// Error logs error messages in red color.
var Error = func(format string, a ...any) {
	_, _ = errorColor.Fprintf(output, format, a...)
}

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It starts as a no-op and is swapped in Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init initializes the logger package, enabling or disabling debug logging.
// When enabled, Debug prints cyan-colored messages; when disabled it silently
// ignores everything.
//
// Colour is dropped when stderr is not a terminal (redirected to a file or a
// pipe), mirroring what fatih/color does on its own for stdout.
func Init(enableDebug bool) {
	if f, ok := output.(*os.File); !ok || !isTerminal(f) {
		disableColor()
	}

	if enableDebug {
		Debug = func(format string, a ...any) {
			_, _ = debugColor.Fprintf(output, format, a...)
		}
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all log levels to w. Colour is disabled because the
// destination is no longer known to be a terminal; tests rely on this to get
// plain text back.
func SetOutput(w io.Writer) {
	output = w
	disableColor()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func disableColor() {
	for _, c := range []*color.Color{infoColor, warnColor, errorColor, debugColor} {
		c.DisableColor()
	}
}
