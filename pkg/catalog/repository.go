package catalog

import (
	"context"

	"github.com/Sternrassler/catalog-client/pkg/gateway"
	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
)

// Fetcher performs the raw network calls. Non-2xx statuses are returned as
// responses; only transport failures are returned as errors.
type Fetcher interface {
	FetchList(ctx context.Context, limit, offset int) (*gateway.RawResponse, error)
	FetchItem(ctx context.Context, id int) (*gateway.RawResponse, error)
}

// PageSource loads one page of summaries.
type PageSource interface {
	Page(ctx context.Context, limit, offset int) result.Result[model.Page]
}

// ItemSource loads one item's details.
type ItemSource interface {
	Item(ctx context.Context, id int) result.Result[model.ItemDetail]
}

// Call site names, used as metric and log labels.
const (
	CallList = "list"
	CallItem = "item"
)

// Repository implements PageSource and ItemSource on top of a Fetcher.
type Repository struct {
	fetcher  Fetcher
	gateway  *gateway.Gateway
	listCall *gateway.Call[model.Page]
	itemCall *gateway.Call[model.ItemDetail]
}

// NewRepository creates a Repository.
func NewRepository(fetcher Fetcher, gw *gateway.Gateway) *Repository {
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &Repository{
		fetcher:  fetcher,
		gateway:  gw,
		listCall: gateway.NewCall(CallList, DecodePage, gateway.WithEmptyBody(model.Page{Items: []model.ItemSummary{}})),
		itemCall: gateway.NewCall(CallItem, DecodeItem),
	}
}

// Page implements PageSource.
func (r *Repository) Page(ctx context.Context, limit, offset int) result.Result[model.Page] {
	return r.listCall.Perform(ctx, r.gateway, func(ctx context.Context) (*gateway.RawResponse, error) {
		return r.fetcher.FetchList(ctx, limit, offset)
	})
}

// Item implements ItemSource.
func (r *Repository) Item(ctx context.Context, id int) result.Result[model.ItemDetail] {
	return r.itemCall.Perform(ctx, r.gateway, func(ctx context.Context) (*gateway.RawResponse, error) {
		return r.fetcher.FetchItem(ctx, id)
	})
}
