package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/Veraticus/work-order-flow/internal/correct"
	"github.com/Veraticus/work-order-flow/internal/extract"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse saved model responses without calling the model",
		Long: `Run the deterministic parsers on a saved model response. Useful for
checking a profile or a field layout against real output.

The response is read from FILE, or from standard input when FILE is
omitted or "-".`,
	}

	cmd.AddCommand(parseFieldsCmd())
	cmd.AddCommand(parseCategoriesCmd())

	return cmd
}

func parseFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields [FILE]",
		Short: "Parse a numbered field response into a work order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")

			var corrector *correct.Corrector
			if !raw {
				registry, err := config.LoadRegistry()
				if err != nil {
					return err
				}
				if corrector, err = config.LoadCorrector(registry); err != nil {
					return err
				}
			}

			text, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return parseFields(cmd.OutOrStdout(), text, name, time.Now(), corrector)
		},
	}

	cmd.Flags().Bool("raw", false, "Show the fields as read, without data corrections")

	return cmd
}

// parseFields renders the work order in text. A nil corrector leaves the
// fields as read.
func parseFields(w io.Writer, text, fileURL string, now time.Time, corrector *correct.Corrector) error {
	fields := extract.ParseFields(text)
	if fields.Len() == 0 {
		return fmt.Errorf("no numbered fields found in %s", fileURL)
	}
	order := extract.BuildWorkOrder(fields, extract.DefaultLayout(), fileURL, now)
	if corrector != nil {
		order = corrector.Apply(order)
	}
	_, err := fmt.Fprintln(w, cli.RenderWorkOrder(order))
	return err
}

func parseCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories [FILE]",
		Short: "Validate and consolidate a categorization response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := cmd.Flags().GetString("profile")
			raw, _ := cmd.Flags().GetBool("text")

			registry, err := config.LoadRegistry()
			if err != nil {
				return err
			}
			profile, err := registry.Lookup(key)
			if err != nil {
				return err
			}

			text, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return parseCategories(cmd.OutOrStdout(), text, profile, raw)
		},
	}

	cmd.Flags().StringP("profile", "p", "", "Category profile key (required)")
	cmd.Flags().Bool("text", false, "Print the consolidated text only")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func parseCategories(w io.Writer, text string, profile *categorize.Profile, raw bool) error {
	result := categorize.Categorize(text, profile)
	if raw {
		_, err := fmt.Fprintln(w, result.Text())
		return err
	}
	_, err := fmt.Fprintln(w, cli.RenderCategorization(result.Map.Entries(), result.Caveats))
	return err
}

// readInput returns the contents of args[0], or of stdin when no file or
// "-" is given, together with a name for it.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}
