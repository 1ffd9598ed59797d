package main

import (
	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/internal/tui"
	"github.com/Sternrassler/catalog-client/pkg/detail"
	"github.com/Sternrassler/catalog-client/pkg/logging"
	"github.com/Sternrassler/catalog-client/pkg/pagination"
)

func browseCmd(root *rootOptions) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := root.app
			ctx := cmd.Context()

			list := pagination.New(ctx, a.repo, pagination.Config{PageSize: pageSize},
				pagination.WithLogger(logging.NewLogger("pagination")))
			defer list.Close()

			open := func(id int) tui.DetailController {
				return detail.New(ctx, a.repo, id,
					detail.WithLogger(logging.NewLogger("detail")))
			}
			return tui.Run(ctx, list, open)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", pagination.DefaultPageSize, "items per page")
	return cmd
}
