package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"jarvis/internal/logger"
	"jarvis/internal/registry"
)

// promptConfirm returns a registry.Confirm that asks on out and reads the
// answer from in. "y" and "n" are accepted in any case; anything else,
// including end of input, is an error.
func promptConfirm(in io.Reader, out io.Writer) registry.Confirm {
	if f, ok := in.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		logger.Debug("[DEBUG] Reading confirmation from non-interactive input\n")
	}

	reader := bufio.NewReader(in)
	return func(name string) (bool, error) {
		fmt.Fprintf(out, "Delete \"%s\" [y, n]? ", name)

		answer, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
			fmt.Fprintln(out)
			return false, fmt.Errorf("no answer given")
		}
		answer = strings.TrimSpace(answer)

		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			return false, fmt.Errorf("\"%s\" is not a valid option", answer)
		}
	}
}
