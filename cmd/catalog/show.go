package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/pkg/detail"
	"github.com/Sternrassler/catalog-client/pkg/logging"
	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
)

func showCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one item's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			a := root.app
			ctrl := detail.New(cmd.Context(), a.repo, id,
				detail.WithLogger(logging.NewLogger("detail")))
			defer ctrl.Close()

			item, err := awaitDetail(cmd, ctrl)
			if err != nil {
				return err
			}
			if asJSON {
				return writeItemJSON(cmd.OutOrStdout(), item)
			}
			writeItem(cmd.OutOrStdout(), item)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func awaitDetail(cmd *cobra.Command, ctrl *detail.Controller) (model.ItemDetail, error) {
	sub := ctrl.Subscribe()
	defer sub.Cancel()

	for {
		st, ok := sub.Next(cmd.Context())
		if !ok {
			return model.ItemDetail{}, cmd.Context().Err()
		}
		switch st.Status {
		case detail.Loading:
		case detail.Loaded:
			return st.Item, nil
		case detail.NetworkError, detail.NoConnectivityError:
			return model.ItemDetail{}, fmt.Errorf("load item %d: %w", ctrl.ID(), &result.Error{Kind: ctrl.LastErrorKind()})
		default:
			return model.ItemDetail{}, fmt.Errorf("unhandled detail state %s", st.Status)
		}
	}
}

func writeItem(w io.Writer, it model.ItemDetail) {
	image := it.ImageURL
	if image == "" {
		image = "-"
	}
	fmt.Fprintf(w, "ID:     %d\nName:   %s\nHeight: %d\nImage:  %s\n", it.ID, it.Name, it.Height, image)
}

type itemJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Height   int    `json:"height"`
	ImageURL string `json:"image_url,omitempty"`
}

func toItemJSON(it model.ItemDetail) itemJSON {
	return itemJSON{ID: it.ID, Name: it.Name, Height: it.Height, ImageURL: it.ImageURL}
}

func writeItemJSON(w io.Writer, it model.ItemDetail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toItemJSON(it))
}
