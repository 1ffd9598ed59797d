package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sternrassler/catalog-client/pkg/model"
)

var (
	errMissingResults = errors.New("missing results")
	errMissingSprites = errors.New("missing sprites")
	errInvalidItemURL = errors.New("item url has no numeric id")
)

// listResponse is the wire shape of GET /pokemon.
type listResponse struct {
	Count   int                 `json:"count"`
	Next    *string             `json:"next"`
	Results *[]listItemResponse `json:"results"`
}

type listItemResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// itemResponse is the wire shape of GET /pokemon/{id}.
type itemResponse struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Height  int      `json:"height"`
	Sprites *sprites `json:"sprites"`
}

type sprites struct {
	FrontDefault *string `json:"front_default"`
}

// DecodePage decodes a list response body into a Page. Item ids are taken
// from the trailing path segment of each entry's resource URL.
func DecodePage(body []byte) (model.Page, error) {
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Page{}, fmt.Errorf("unmarshal list: %w", err)
	}
	if resp.Results == nil {
		return model.Page{}, errMissingResults
	}

	items := make([]model.ItemSummary, 0, len(*resp.Results))
	for i, entry := range *resp.Results {
		id, err := ParseItemID(entry.URL)
		if err != nil {
			return model.Page{}, fmt.Errorf("result %d: %w", i, err)
		}
		items = append(items, model.ItemSummary{ID: id, Name: entry.Name})
	}

	return model.Page{Items: items}, nil
}

// DecodeItem decodes a detail response body into an ItemDetail.
func DecodeItem(body []byte) (model.ItemDetail, error) {
	var resp itemResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ItemDetail{}, fmt.Errorf("unmarshal item: %w", err)
	}
	if resp.Sprites == nil {
		return model.ItemDetail{}, errMissingSprites
	}

	detail := model.ItemDetail{
		ID:     resp.ID,
		Name:   resp.Name,
		Height: resp.Height,
	}
	if resp.Sprites.FrontDefault != nil {
		detail.ImageURL = *resp.Sprites.FrontDefault
	}
	return detail, nil
}

// ParseItemID extracts the id from a resource URL such as
// "https://pokeapi.co/api/v2/pokemon/25/".
func ParseItemID(rawURL string) (int, error) {
	trimmed := strings.TrimSuffix(rawURL, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]

	id, err := strconv.Atoi(segment)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidItemURL, rawURL)
	}
	return id, nil
}
