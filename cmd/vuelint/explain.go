package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/rules"
)

func explainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [rule]",
		Short: "Show detailed explanation of a rule",
		Long:  "Show detailed explanation of a rule, by ID or name, or list all available rules if no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				listRules(w, rules.All())
				return nil
			}

			r, ok := rules.Get(args[0])
			if !ok {
				r, ok = rules.Get(strings.ToUpper(args[0]))
			}
			if !ok {
				return fmt.Errorf("rule %q not found", args[0])
			}
			explainRule(w, r)
			return nil
		},
	}

	return cmd
}

func listRules(w io.Writer, all []rules.Rule) {
	fmt.Fprintln(w, "Available rules:")
	fmt.Fprintln(w)

	categories := map[analyzer.Category][]rules.Rule{}
	for _, r := range all {
		categories[r.Category()] = append(categories[r.Category()], r)
	}

	categoryOrder := []analyzer.Category{
		analyzer.CategoryDeprecated,
		analyzer.CategoryStyle,
	}

	for _, cat := range categoryOrder {
		catRules := categories[cat]
		if len(catRules) == 0 {
			continue
		}

		fmt.Fprintf(w, "## %s\n", categoryTitle(cat))
		for _, r := range catRules {
			fmt.Fprintf(w, "  %s  %-30s  %s\n", r.ID(), r.Name(), r.Severity())
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d rules\n", len(all))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'vuelint explain <rule>' for detailed information about a specific rule.")
}

func explainRule(w io.Writer, r rules.Rule) {
	fmt.Fprintf(w, "Rule: %s (%s)\n", r.ID(), r.Name())
	fmt.Fprintf(w, "Category: %s\n", r.Category())
	fmt.Fprintf(w, "Severity: %s\n", r.Severity())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Description:")
	fmt.Fprintf(w, "  %s\n", r.Description())

	d, ok := r.(rules.Documented)
	if !ok || len(d.Options()) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	for _, o := range d.Options() {
		fmt.Fprintf(w, "  %s (%s)", o.Name, o.Type)
		if o.Default != "" {
			fmt.Fprintf(w, ", default %s", o.Default)
		}
		fmt.Fprintf(w, "\n      %s\n", o.Description)
	}
}

func categoryTitle(c analyzer.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
