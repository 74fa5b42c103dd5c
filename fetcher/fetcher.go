// Package fetcher retrieves candidate borrower addresses from the Morpho
// subgraphs, one cursor-paginated page at a time.
package fetcher

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Page is one page of borrower addresses. LastID is the opaque continuation
// cursor for the next call; HasMore is false once the subgraph is exhausted.
type Page struct {
	HasMore bool
	Users   []common.Address
	LastID  string
}

// Fetcher supplies candidate borrowers to the engine.
type Fetcher interface {
	FetchUsers(ctx context.Context, lastID string) (Page, error)
}
