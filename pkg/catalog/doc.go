// Package catalog turns raw catalog API responses into domain values.
//
// A Repository pairs a Fetcher (the transport) with a gateway.Gateway and the
// two call sites of the application:
//
//   - the list call, which tolerates an absent body by returning an empty page
//   - the detail call, which treats an absent body as a failure
//
// Example usage:
//
//	gw := gateway.New(connectivity.NewInterfaces(connectivity.DefaultInterfacesTTL, logger), logger)
//	repo := catalog.NewRepository(httpClient, gw)
//	res := repo.Page(ctx, 20, 0)
//	if page, ok := res.Value(); ok {
//		// render page.Items
//	}
//
// BatchLoader fetches many item details in parallel through the same
// repository using a bounded worker pool.
package catalog
