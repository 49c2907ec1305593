package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored work order and its categorization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			return showWorkOrder(ctx, cmd.OutOrStdout(), store, args[0])
		},
	}
}

func showWorkOrder(ctx context.Context, w io.Writer, store service.Storage, id string) error {
	order, err := store.GetWorkOrder(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.RenderBox("Work order "+order.Number, cli.RenderWorkOrder(*order)))

	c, err := store.GetCategorization(ctx, id)
	switch {
	case errors.Is(err, common.ErrNotFound):
		_, err = fmt.Fprintln(w, cli.FormatInfo("Not categorized yet. Run: wof categorize"))
		return err
	case err != nil:
		return err
	}

	title := "Categories"
	if c.Profile != "" {
		title += " (" + c.Profile + ")"
	}
	_, err = fmt.Fprintln(w, cli.RenderBox(title, cli.RenderCategorization(c.Entries, c.Caveats)))
	return err
}
