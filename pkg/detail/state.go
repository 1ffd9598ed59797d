package detail

import (
	"fmt"

	"github.com/Sternrassler/catalog-client/pkg/model"
)

// Status selects the active variant of a State.
type Status int

const (
	Loading Status = iota
	NetworkError
	NoConnectivityError
	Loaded
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case NetworkError:
		return "network_error"
	case NoConnectivityError:
		return "no_connectivity_error"
	case Loaded:
		return "loaded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the published detail view. Item is only set when Status is Loaded.
type State struct {
	Status Status
	Item   model.ItemDetail
}

func (s State) String() string {
	if s.Status == Loaded {
		return fmt.Sprintf("loaded(id=%d, name=%s)", s.Item.ID, s.Item.Name)
	}
	return s.Status.String()
}
