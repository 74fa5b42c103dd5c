package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultBatchSize bounds one subgraph page.
const DefaultBatchSize = 1000

// compoundQuery selects borrower accounts only, ordered ascending by id so
// the id cursor paginates stably.
const compoundQuery = `query GetAccounts($first: Int, $lastId: ID){
  users(
      first: $first
      where: {id_gt: $lastId isBorrower: true}
      orderBy: id,
      orderDirection: asc
  ) {
    id
    address
    isBorrower
  }
}`

const aaveQuery = `query GetAccounts($first: Int, $lastId: ID){
  accounts(
      first: $first,
      where: { id_gt: $lastId }
      orderBy: id,
      orderDirection: asc
  ) {
    id
    address
  }
}`

type graphAccount struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type graphRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphResponse struct {
	Data   map[string][]graphAccount `json:"data"`
	Errors json.RawMessage           `json:"errors"`
}

// GraphFetcher pages borrower accounts out of a Morpho subgraph.
type GraphFetcher struct {
	URL       string
	BatchSize int

	query  string
	root   string
	client *http.Client
}

// NewCompoundGraphFetcher fetches from the Morpho-Compound subgraph.
func NewCompoundGraphFetcher(url string, batchSize int) *GraphFetcher {
	return newGraphFetcher(url, batchSize, compoundQuery, "users")
}

// NewAaveGraphFetcher fetches from the Morpho-Aave subgraph, which exposes
// accounts instead of users.
func NewAaveGraphFetcher(url string, batchSize int) *GraphFetcher {
	return newGraphFetcher(url, batchSize, aaveQuery, "accounts")
}

func newGraphFetcher(url string, batchSize int, query, root string) *GraphFetcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &GraphFetcher{
		URL:       url,
		BatchSize: batchSize,
		query:     query,
		root:      root,
		client:    http.DefaultClient,
	}
}

func (f *GraphFetcher) FetchUsers(ctx context.Context, lastID string) (Page, error) {
	body, err := json.Marshal(graphRequest{
		Query: f.query,
		Variables: map[string]interface{}{
			"lastId": lastID,
			"first":  f.BatchSize,
		},
	})
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("subgraph returned status %d", resp.StatusCode)
	}

	var decoded graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Page{}, err
	}
	if len(decoded.Errors) > 0 {
		return Page{}, fmt.Errorf("subgraph errors: %s", decoded.Errors)
	}
	accounts, ok := decoded.Data[f.root]
	if !ok {
		return Page{}, fmt.Errorf("subgraph response missing %q", f.root)
	}

	page := Page{
		HasMore: len(accounts) == f.BatchSize,
		Users:   make([]common.Address, len(accounts)),
	}
	for i, account := range accounts {
		page.Users[i] = common.HexToAddress(account.Address)
	}
	if len(accounts) > 0 {
		page.LastID = accounts[len(accounts)-1].ID
	}
	return page, nil
}
