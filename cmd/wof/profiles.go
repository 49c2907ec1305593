package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/spf13/cobra"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect category profiles",
		Long: `List and inspect the category profiles work orders are routed to.

Profiles come from the file named by profiles.path in the config, or from
the built-in profiles when none is configured.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List category profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := config.LoadRegistry()
			if err != nil {
				return err
			}
			return listProfiles(cmd.OutOrStdout(), registry)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show KEY",
		Short: "Show one category profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := config.LoadRegistry()
			if err != nil {
				return err
			}
			profile, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}
			return showProfile(cmd.OutOrStdout(), profile)
		},
	})

	return cmd
}

func listProfiles(w io.Writer, registry *categorize.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, cli.TableHeaderStyle.Render("KEY")+"\t"+
		cli.TableHeaderStyle.Render("NAME")+"\t"+
		cli.TableHeaderStyle.Render("MATCHING")+"\t"+
		cli.TableHeaderStyle.Render("CATEGORIES")+"\t"+
		cli.TableHeaderStyle.Render("COMPANIES"))

	for _, p := range registry.Profiles() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			p.Key(), p.Name(), p.Matching(), len(p.Taxonomy()), strings.Join(p.Companies(), ", "))
	}
	return tw.Flush()
}

func showProfile(w io.Writer, p *categorize.Profile) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", cli.LabelStyle.Render("Companies:"), strings.Join(p.Companies(), ", "))
	fmt.Fprintf(&b, "%s %s\n", cli.LabelStyle.Render("Matching: "), p.Matching())
	fmt.Fprintf(&b, "%s %s\n", cli.LabelStyle.Render("Catch-all:"), p.CatchAll())

	if prefix := p.NeverConsolidatedPrefix(); prefix != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.LabelStyle.Render("Never consolidated:"), prefix)
	}
	if escapes := p.EscapePrefixes(); len(escapes) > 0 {
		fmt.Fprintf(&b, "%s %s\n", cli.LabelStyle.Render("Escape prefixes:"), strings.Join(escapes, ", "))
	}

	b.WriteString("\n" + cli.LabelStyle.Render("Taxonomy") + "\n")
	for _, label := range p.Taxonomy() {
		fmt.Fprintf(&b, "  %s\n", label)
	}

	if subs := p.Substitutions(); len(subs) > 0 {
		b.WriteString("\n" + cli.LabelStyle.Render("Substitutions") + "\n")
		for _, s := range subs {
			fmt.Fprintf(&b, "  %s -> %s\n", s.From, s.To)
		}
	}

	_, err := fmt.Fprintln(w, cli.RenderBox(p.Name(), strings.TrimRight(b.String(), "\n")))
	return err
}
