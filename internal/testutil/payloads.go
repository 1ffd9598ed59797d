// Package testutil provides testing utilities for the catalog client.
package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/catalog-client/pkg/model"
)

// ItemURL is the resource URL the API reports for an item id.
func ItemURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id)
}

// PageJSON renders items in the list endpoint's wire format.
func PageJSON(items ...model.ItemSummary) []byte {
	type entry struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]entry, 0, len(items))
	for _, it := range items {
		results = append(results, entry{Name: it.Name, URL: ItemURL(it.ID)})
	}

	data, err := json.Marshal(struct {
		Count   int     `json:"count"`
		Next    *string `json:"next"`
		Results []entry `json:"results"`
	}{Count: len(items), Results: results})
	if err != nil {
		panic(err)
	}
	return data
}

// ItemJSON renders an item in the detail endpoint's wire format.
func ItemJSON(detail model.ItemDetail) []byte {
	var front *string
	if detail.ImageURL != "" {
		front = &detail.ImageURL
	}

	data, err := json.Marshal(map[string]any{
		"id":     detail.ID,
		"name":   detail.Name,
		"height": detail.Height,
		"sprites": map[string]any{
			"front_default": front,
		},
	})
	if err != nil {
		panic(err)
	}
	return data
}

// Summary builds the summary for id using the "Name_<id>" convention.
func Summary(id int) model.ItemSummary {
	return model.ItemSummary{ID: id, Name: fmt.Sprintf("Name_%d", id)}
}

// Summaries builds summaries for the given ids.
func Summaries(ids ...int) []model.ItemSummary {
	out := make([]model.ItemSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, Summary(id))
	}
	return out
}

// Detail builds a detail record for id.
func Detail(id int) model.ItemDetail {
	return model.ItemDetail{
		ID:       id,
		Name:     fmt.Sprintf("Name_%d", id),
		ImageURL: fmt.Sprintf("https://img.example.com/%d.png", id),
		Height:   id * 10,
	}
}
