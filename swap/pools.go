package swap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultPoolGraphURL is the public Uniswap V3 subgraph.
const DefaultPoolGraphURL = "https://api.thegraph.com/subgraphs/name/uniswap/uniswap-v3"

const poolQuery = `
  query GetPool($token1: ID!, $token2: ID!) {
    pools(
      first: 10
      where: { token0_in: [$token1, $token2], token1_in: [$token1, $token2] }
    ) {
      id
      token0 {
        name
        id
      }
      feeTier
      token1 {
        name
        id
      }
      totalValueLockedToken0
      totalValueLockedToken1
    }
  }
`

// PoolToken identifies one side of a pool.
type PoolToken struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Pool is a Uniswap V3 pool's liquidity snapshot, used only for diagnostic
// logging before a liquidation.
type Pool struct {
	ID                     string    `json:"id"`
	Token0                 PoolToken `json:"token0"`
	FeeTier                string    `json:"feeTier"`
	Token1                 PoolToken `json:"token1"`
	TotalValueLockedToken0 string    `json:"totalValueLockedToken0"`
	TotalValueLockedToken1 string    `json:"totalValueLockedToken1"`
}

// PoolFetcher queries pool liquidity from the Uniswap V3 subgraph.
type PoolFetcher struct {
	URL    string
	client *http.Client
}

func NewPoolFetcher(url string) *PoolFetcher {
	if url == "" {
		url = DefaultPoolGraphURL
	}
	return &PoolFetcher{URL: url, client: http.DefaultClient}
}

// FetchPools returns the top pools holding the two tokens, best effort.
func (f *PoolFetcher) FetchPools(ctx context.Context, token1, token2 common.Address) ([]Pool, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query": poolQuery,
		// subgraph ids are lowercase hex
		"variables": map[string]string{
			"token1": strings.ToLower(token1.Hex()),
			"token2": strings.ToLower(token2.Hex()),
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pool subgraph returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Data struct {
			Pools []Pool `json:"pools"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Data.Pools, nil
}
