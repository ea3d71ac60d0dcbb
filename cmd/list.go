package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jarvis/internal/display"
	"jarvis/internal/registry"
)

// listOptions holds the flags of the list subcommand.
type listOptions struct {
	categories     []string
	listCategories bool
	brief          bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display available programs and databases",
		Long: `Display every entry in the registry with its version and description.

Use --categories to restrict the listing to one or more categories, or
--list-categories to see which categories exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.loadStore(false)
			if err != nil {
				return err
			}
			runList(root.printer(cmd), st, opts)
			return nil
		},
	}

	cmd.Flags().VarP(newCommaList(&opts.categories), "categories", "c", "Display all entries in the given comma-separated categories")
	cmd.Flags().BoolVar(&opts.listCategories, "list-categories", false, "Display existing categories")
	cmd.Flags().BoolVar(&opts.brief, "brief", false, "Only display entry names")
	cmd.MarkFlagsMutuallyExclusive("categories", "list-categories")

	return cmd
}

func runList(p *display.Printer, st *registry.Store, opts *listOptions) {
	switch {
	case opts.listCategories:
		for _, tag := range st.Categories() {
			p.Line(tag)
		}

	case len(opts.categories) > 0:
		for _, tag := range opts.categories {
			p.Banner(tag)
			names := st.InCategory(tag)
			if len(names) == 0 {
				p.Line(fmt.Sprintf("No such category: %s", tag))
				p.Line("Use --list-categories to view possible categories")
				continue
			}
			for _, name := range names {
				listEntry(p, st, name, opts.brief)
			}
		}

	default:
		for _, name := range st.Names() {
			listEntry(p, st, name, opts.brief)
		}
	}
}

func listEntry(p *display.Printer, st *registry.Store, name string, brief bool) {
	rec, err := st.Get(name)
	if err != nil {
		return
	}
	if brief {
		p.Pair(name, "")
		return
	}
	p.Pair(entryHeading(name, rec), rec.Description)
}

// entryHeading is "name(version): ", or just the name when no version is
// recorded.
func entryHeading(name string, rec registry.Record) string {
	if rec.Version == "" {
		return name
	}
	return fmt.Sprintf("%s(%s): ", name, rec.Version)
}
