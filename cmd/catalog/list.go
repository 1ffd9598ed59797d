package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/pkg/logging"
	"github.com/Sternrassler/catalog-client/pkg/pagination"
	"github.com/Sternrassler/catalog-client/pkg/result"
)

func listCmd(root *rootOptions) *cobra.Command {
	var (
		pages    int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages <= 0 {
				return fmt.Errorf("--pages must be positive (got %d)", pages)
			}
			a := root.app
			ctrl := pagination.New(cmd.Context(), a.repo, pagination.Config{PageSize: pageSize},
				pagination.WithLogger(logging.NewLogger("pagination")))
			defer ctrl.Close()
			return printPages(cmd, ctrl, pages)
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to print")
	cmd.Flags().IntVar(&pageSize, "page-size", pagination.DefaultPageSize, "items per page")
	return cmd
}

// printPages follows the controller until n pages were printed or the end of
// the catalog was reached.
func printPages(cmd *cobra.Command, ctrl *pagination.Controller, n int) error {
	out := cmd.OutOrStdout()
	sub := ctrl.Subscribe()
	defer sub.Cancel()

	printed, loaded := 0, 0
	for {
		st, ok := sub.Next(cmd.Context())
		if !ok {
			return cmd.Context().Err()
		}

		switch st.Status {
		case pagination.ListLoading:
		case pagination.ListEmpty:
			fmt.Fprintln(out, "No items.")
			return nil
		case pagination.ListNetworkError, pagination.ListNoConnectivityError:
			return fmt.Errorf("load page %d: %w", loaded+1, &result.Error{Kind: ctrl.LastErrorKind()})
		case pagination.ListLoaded:
			if st.LoadingMore {
				continue
			}
			if len(st.Items) == printed {
				return nil
			}
			writeSummaries(out, st, printed)
			printed = len(st.Items)
			loaded++
			if loaded >= n || ctrl.EndReached() {
				return nil
			}
			ctrl.RequestNextPage()
		default:
			return fmt.Errorf("unhandled list state %s", st.Status)
		}
	}
}

func writeSummaries(w io.Writer, st pagination.ListState, from int) {
	for _, it := range st.Items[from:] {
		fmt.Fprintf(w, "%5d  %s\n", it.ID, it.Name)
	}
}
