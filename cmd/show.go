package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/display"
	"jarvis/internal/registry"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var (
		prev, commands, categories, installation, depends bool
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Obtain detailed information about a program or database",
		Long: `Display the version and description of one entry, plus any extra
fields requested with flags. NAME may be abbreviated or slightly misspelled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.loadStore(false)
			if err != nil {
				return err
			}

			var fields []registry.Field
			for f, on := range map[registry.Field]bool{
				registry.FieldPreviousVersions:   prev,
				registry.FieldCommands:           commands,
				registry.FieldCategories:         categories,
				registry.FieldInstallationMethod: installation,
				registry.FieldDependencies:       depends,
			} {
				if on {
					fields = append(fields, f)
				}
			}

			p := root.printer(cmd)
			name, err := resolveEntry(p, st, args[0], root.cfg.Cutoff)
			if err != nil {
				return err
			}
			rec, err := st.Get(name)
			if err != nil {
				return err
			}
			showEntry(p, name, rec, fields)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&prev, "prev", "p", false, "List former versions")
	cmd.Flags().BoolVarP(&commands, "commands", "c", false, "List commands provided by the program")
	cmd.Flags().BoolVarP(&categories, "categories", "t", false, "List categories the entry is in")
	cmd.Flags().BoolVarP(&installation, "installation", "i", false, "Display the installation method")
	cmd.Flags().BoolVarP(&depends, "depends", "d", false, "List dependencies")

	return cmd
}

// showEntry prints the heading line for name and then each requested field,
// ordered by field key.
func showEntry(p *display.Printer, name string, rec registry.Record, fields []registry.Field) {
	p.Pair(entryHeading(name, rec), rec.Description)

	sort.Slice(fields, func(i, j int) bool { return fields[i].Key() < fields[j].Key() })
	for _, f := range fields {
		var value string
		if f.IsSequence() {
			items := rec.Sequence(f)
			sort.Strings(items)
			value = strings.Join(items, ", ")
		} else {
			value = rec.Scalar(f)
		}
		if value == "" {
			value = "NA"
		}
		p.Pair(f.Key()+": ", value)
	}
}
