// Package pagination owns the accumulated list view of the catalog.
//
// A Controller fetches pages of item summaries through a catalog.PageSource,
// appends them in arrival order and publishes a ListState after every
// transition. Renderers subscribe to the state stream and drive the
// controller with two commands:
//
//	ctrl := pagination.New(ctx, repo, pagination.DefaultConfig())
//	defer ctrl.Close()
//
//	sub := ctrl.Subscribe()
//	for st := range sub.C() {
//		render(st)
//	}
//
//	ctrl.RequestNextPage() // "load more"
//	ctrl.Retry()           // start over from offset 0
//
// The controller:
//   - Starts fetching offset 0 on construction
//   - Ignores RequestNextPage while a fetch is in flight or after the end
//     of data was reached
//   - Drops completions that were superseded by Retry or Close
//   - Reports every failure except missing connectivity as a network error
package pagination
