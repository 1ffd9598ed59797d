package pagination

import (
	"fmt"

	"github.com/Sternrassler/catalog-client/pkg/model"
)

// ListStatus selects the active variant of a ListState.
type ListStatus int

const (
	ListLoading ListStatus = iota
	ListEmpty
	ListNetworkError
	ListNoConnectivityError
	ListLoaded
)

func (s ListStatus) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListEmpty:
		return "empty"
	case ListNetworkError:
		return "network_error"
	case ListNoConnectivityError:
		return "no_connectivity_error"
	case ListLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("ListStatus(%d)", int(s))
	}
}

// ListState is the published list view. Items and LoadingMore are only
// meaningful when Status is ListLoaded.
type ListState struct {
	Status      ListStatus
	Items       []model.ItemSummary
	LoadingMore bool
}

// Loading is the initial state and the state right after Retry.
func Loading() ListState { return ListState{Status: ListLoading} }

// Empty means the first page had no items.
func Empty() ListState { return ListState{Status: ListEmpty} }

// NetworkError covers every failure except missing connectivity.
func NetworkError() ListState { return ListState{Status: ListNetworkError} }

// NoConnectivityError means no network path was available.
func NoConnectivityError() ListState { return ListState{Status: ListNoConnectivityError} }

// Loaded holds every item accumulated so far.
func Loaded(items []model.ItemSummary, loadingMore bool) ListState {
	return ListState{Status: ListLoaded, Items: items, LoadingMore: loadingMore}
}

// IsLoaded reports whether the state carries items.
func (s ListState) IsLoaded() bool {
	return s.Status == ListLoaded
}

// Equal compares two states, including item order.
func (s ListState) Equal(o ListState) bool {
	if s.Status != o.Status || s.LoadingMore != o.LoadingMore || len(s.Items) != len(o.Items) {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}

func (s ListState) String() string {
	if s.Status == ListLoaded {
		return fmt.Sprintf("loaded(items=%d, loading_more=%t)", len(s.Items), s.LoadingMore)
	}
	return s.Status.String()
}
