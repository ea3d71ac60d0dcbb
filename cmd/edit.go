package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jarvis/internal/logger"
	"jarvis/internal/registry"
)

// editOptions holds the flags of the edit subcommand. Field values are kept
// raw here and turned into registry operations by updates().
type editOptions struct {
	add, edit, remove bool
	yes               bool

	version      string
	synopsis     string
	installation string
	prev         []string
	commands     []string
	categories   []string
	dependencies []string
}

func newEditCmd(root *rootOptions) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit NAME (--append | --edit | --remove)",
		Short: "Edit, append, or remove a database entry",
		Long: `Add a new entry, change fields of an existing one, or remove it.

List flags take comma-separated values. By default a list flag replaces the
stored list; start it with "+" to append ("-c +,samtools,bcftools") or pass "-"
alone to clear it. For single-value flags "-" clears the value.`,
		Example: `  jarvis edit bowtie -a -v 1.1.2 -s "Short read aligner" -c bowtie,bowtie-build
  jarvis edit bowtie -e -c +,bowtie-inspect
  jarvis edit bowtie -r -y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := opts.updates(cmd)
			if err != nil {
				return err
			}

			st, err := root.loadStore(opts.add)
			if err != nil {
				return err
			}

			p := root.printer(cmd)
			switch {
			case opts.add:
				name := args[0]
				if err := st.Insert(name, registry.Record{}); err != nil {
					if errors.Is(err, registry.ErrAlreadyExists) {
						return fmt.Errorf("\"%s\" already exists in database. Use \"jarvis edit -e %s\" to modify an entry", name, name)
					}
					return err
				}
				if err := applyUpdates(st, name, updates); err != nil {
					return err
				}
				logger.Info("[INFO] Added \"%s\"\n", name)

			case opts.edit:
				name, err := resolveEntry(p, st, args[0], root.cfg.Cutoff)
				if err != nil {
					return err
				}
				if len(updates) == 0 {
					logger.Warn("[WARN] No fields given, nothing to edit\n")
					return nil
				}
				if err := applyUpdates(st, name, updates); err != nil {
					return err
				}
				logger.Info("[INFO] Updated \"%s\"\n", name)

			case opts.remove:
				name, err := resolveEntry(p, st, args[0], root.cfg.Cutoff)
				if err != nil {
					return err
				}
				confirm := promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
				if opts.yes {
					confirm = func(string) (bool, error) { return true, nil }
				}
				removed, err := st.RemoveConfirmed(name, confirm)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("\"%s\" was not removed. Nothing done", name)
				}
				logger.Info("[INFO] Removed \"%s\"\n", name)
			}

			return root.saveStore(st)
		},
	}

	cmd.Flags().BoolVarP(&opts.add, "append", "a", false, "Add a new entry to the database")
	cmd.Flags().BoolVarP(&opts.edit, "edit", "e", false, "Edit an existing entry")
	cmd.Flags().BoolVarP(&opts.remove, "remove", "r", false, "Remove an existing entry")
	cmd.MarkFlagsMutuallyExclusive("append", "edit", "remove")
	cmd.MarkFlagsOneRequired("append", "edit", "remove")

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask before removing")

	cmd.Flags().StringVarP(&opts.version, "version", "v", "", "Current version (\"-\" to clear)")
	cmd.Flags().StringVarP(&opts.synopsis, "synopsis", "s", "", "Description of the entry")
	cmd.Flags().StringVarP(&opts.installation, "installation", "i", "", "Method used to install the program")
	cmd.Flags().VarP(newCommaList(&opts.prev), "prev", "p", "Previous versions with last date used, e.g. 1.0(to 2016-01-01)")
	cmd.Flags().VarP(newCommaList(&opts.commands), "commands", "c", "Commands provided by the program")
	cmd.Flags().VarP(newCommaList(&opts.categories), "categories", "t", "Categories the entry is in")
	cmd.Flags().VarP(newCommaList(&opts.dependencies), "dependencies", "d", "Program dependencies")

	return cmd
}

// updates turns the field flags that were set to non-empty values into
// operations, in field order.
func (o *editOptions) updates(cmd *cobra.Command) ([]fieldUpdate, error) {
	scalars := map[registry.Field]struct {
		flag  string
		value string
	}{
		registry.FieldDescription:        {"synopsis", o.synopsis},
		registry.FieldVersion:            {"version", o.version},
		registry.FieldInstallationMethod: {"installation", o.installation},
	}
	lists := map[registry.Field]struct {
		flag   string
		tokens []string
	}{
		registry.FieldPreviousVersions: {"prev", o.prev},
		registry.FieldCommands:         {"commands", o.commands},
		registry.FieldDependencies:     {"dependencies", o.dependencies},
		registry.FieldCategories:       {"categories", o.categories},
	}

	var out []fieldUpdate
	for _, f := range registry.Fields() {
		if s, ok := scalars[f]; ok {
			if cmd.Flags().Changed(s.flag) && s.value != "" {
				out = append(out, fieldUpdate{field: f, op: parseScalarUpdate(s.value)})
			}
			continue
		}
		l := lists[f]
		if !cmd.Flags().Changed(l.flag) || len(l.tokens) == 0 {
			continue
		}
		op, err := parseListUpdate(l.tokens)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", l.flag, err)
		}
		out = append(out, fieldUpdate{field: f, op: op})
	}
	return out, nil
}
