package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/Sternrassler/catalog-client/pkg/gateway"
	"github.com/Sternrassler/catalog-client/pkg/model"
)

// ListCall records one FetchList invocation.
type ListCall struct {
	Limit  int
	Offset int
}

// FakeFetcher is a scripted in-process catalog.Fetcher.
//
// By default it answers every list call with an empty page and every item
// call with Detail(id). Scripts replace that per offset or per id. When held,
// calls block until Release is called once per call.
type FakeFetcher struct {
	mu        sync.Mutex
	listCalls []ListCall
	itemCalls []int

	pages     map[int]scripted
	items     map[int]scripted
	listFunc  func(limit, offset int) (*gateway.RawResponse, error)
	itemFunc  func(id int) (*gateway.RawResponse, error)
	gate      chan struct{}
	callReady chan struct{}
}

type scripted struct {
	resp *gateway.RawResponse
	err  error
}

// NewFakeFetcher creates an unscripted fake.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		pages:     make(map[int]scripted),
		items:     make(map[int]scripted),
		callReady: make(chan struct{}, 64),
	}
}

// SetPage scripts a 200 list response for offset.
func (f *FakeFetcher) SetPage(offset int, items ...model.ItemSummary) {
	f.SetListResponse(offset, &gateway.RawResponse{StatusCode: http.StatusOK, Body: PageJSON(items...)}, nil)
}

// SetListResponse scripts an arbitrary list outcome for offset.
func (f *FakeFetcher) SetListResponse(offset int, resp *gateway.RawResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[offset] = scripted{resp: resp, err: err}
}

// SetListFunc overrides list handling entirely.
func (f *FakeFetcher) SetListFunc(fn func(limit, offset int) (*gateway.RawResponse, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFunc = fn
}

// SetItemResponse scripts an arbitrary item outcome for id.
func (f *FakeFetcher) SetItemResponse(id int, resp *gateway.RawResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id] = scripted{resp: resp, err: err}
}

// SetItemFunc overrides item handling entirely.
func (f *FakeFetcher) SetItemFunc(fn func(id int) (*gateway.RawResponse, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemFunc = fn
}

// Hold makes subsequent calls block until released.
func (f *FakeFetcher) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate == nil {
		f.gate = make(chan struct{})
	}
}

// Release lets exactly one held call proceed. It blocks until a call takes it.
func (f *FakeFetcher) Release() {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		gate <- struct{}{}
	}
}

// AwaitCall blocks until a call has been registered or ctx is done.
func (f *FakeFetcher) AwaitCall(ctx context.Context) bool {
	select {
	case <-f.callReady:
		return true
	case <-ctx.Done():
		return false
	}
}

// ListCalls returns a copy of the recorded list calls.
func (f *FakeFetcher) ListCalls() []ListCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ListCall(nil), f.listCalls...)
}

// ItemCalls returns a copy of the recorded item ids.
func (f *FakeFetcher) ItemCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.itemCalls...)
}

// FetchList implements catalog.Fetcher.
func (f *FakeFetcher) FetchList(ctx context.Context, limit, offset int) (*gateway.RawResponse, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, ListCall{Limit: limit, Offset: offset})
	fn := f.listFunc
	s, scriptedPage := f.pages[offset]
	gate := f.gate
	f.mu.Unlock()

	if err := f.wait(ctx, gate); err != nil {
		return nil, err
	}

	switch {
	case fn != nil:
		return fn(limit, offset)
	case scriptedPage:
		return s.resp, s.err
	default:
		return &gateway.RawResponse{StatusCode: http.StatusOK, Body: PageJSON()}, nil
	}
}

// FetchItem implements catalog.Fetcher.
func (f *FakeFetcher) FetchItem(ctx context.Context, id int) (*gateway.RawResponse, error) {
	f.mu.Lock()
	f.itemCalls = append(f.itemCalls, id)
	fn := f.itemFunc
	s, scriptedItem := f.items[id]
	gate := f.gate
	f.mu.Unlock()

	if err := f.wait(ctx, gate); err != nil {
		return nil, err
	}

	switch {
	case fn != nil:
		return fn(id)
	case scriptedItem:
		return s.resp, s.err
	default:
		return &gateway.RawResponse{StatusCode: http.StatusOK, Body: ItemJSON(Detail(id))}, nil
	}
}

func (f *FakeFetcher) wait(ctx context.Context, gate chan struct{}) error {
	select {
	case f.callReady <- struct{}{}:
	default:
	}
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
