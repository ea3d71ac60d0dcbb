package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/display"
	"jarvis/internal/probe"
	"jarvis/internal/registry"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [NAME]",
		Short: "Verify that recorded commands are on PATH",
		Long: `Look up every command recorded for an entry on PATH and report the ones
that cannot be found. Without NAME every entry with commands is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.loadStore(false)
			if err != nil {
				return err
			}

			p := root.printer(cmd)
			names := st.Names()
			if len(args) == 1 {
				name, err := resolveEntry(p, st, args[0], root.cfg.Cutoff)
				if err != nil {
					return err
				}
				names = []string{name}
			}

			missing := checkEntries(p, st, probe.Finder{}, names, len(args) == 1)
			if missing > 0 {
				return fmt.Errorf("%d recorded command(s) not found on PATH", missing)
			}
			return nil
		},
	}
}

// checkEntries prints one line per entry and returns the number of missing
// commands. Entries without commands are only reported when verbose is set.
func checkEntries(p *display.Printer, st *registry.Store, f probe.Finder, names []string, verbose bool) int {
	total := 0
	for _, name := range names {
		rec, err := st.Get(name)
		if err != nil {
			continue
		}
		if len(rec.Commands) == 0 {
			if verbose {
				p.Pair(name+": ", "no commands recorded")
			}
			continue
		}

		missing := f.Missing(rec.Commands)
		total += len(missing)
		if len(missing) == 0 {
			p.Pair(name+": ", fmt.Sprintf("ok (%d found)", len(rec.Commands)))
		} else {
			p.Pair(name+": ", "missing "+strings.Join(missing, ", "))
		}
	}
	return total
}
