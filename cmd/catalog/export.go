package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/pkg/catalog"
)

func exportCmd(root *rootOptions) *cobra.Command {
	var (
		from, to    int
		concurrency int
		timeout     time.Duration
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export item details for an id range as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 0 || to < from {
				return fmt.Errorf("invalid id range %d..%d", from, to)
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			ids := make([]int, 0, to-from+1)
			for id := from; id <= to; id++ {
				ids = append(ids, id)
			}

			a := root.app
			loader := catalog.NewBatchLoader(a.repo, catalog.BatchConfig{
				MaxConcurrency: concurrency,
				Timeout:        timeout,
			})
			results := loader.LoadItems(cmd.Context(), ids)

			enc := json.NewEncoder(out)
			failed := 0
			for _, r := range results {
				item, ok := r.Result.Value()
				if !ok {
					failed++
					a.logger.Warn().
						Int("item_id", r.ID).
						Str("error_kind", r.Result.Kind().String()).
						Msg("Item export failed")
					continue
				}
				if err := enc.Encode(toItemJSON(item)); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d items failed", failed, len(ids))
			}
			return nil
		},
	}

	def := catalog.DefaultBatchConfig()
	cmd.Flags().IntVar(&from, "from", 1, "first item id")
	cmd.Flags().IntVar(&to, "to", 20, "last item id (inclusive)")
	cmd.Flags().IntVar(&concurrency, "concurrency", def.MaxConcurrency, "parallel fetches")
	cmd.Flags().DurationVar(&timeout, "timeout", def.Timeout, "timeout per item")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")
	return cmd
}
