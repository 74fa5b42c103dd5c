package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphServer(t *testing.T, root string, pages map[string][]map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		lastID, _ := req.Variables["lastId"].(string)
		cursors = append(cursors, lastID)

		resp := map[string]interface{}{
			"data": map[string]interface{}{root: pages[lastID]},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server, &cursors
}

func account(i int) map[string]string {
	return map[string]string{
		"id":      fmt.Sprintf("id-%d", i),
		"address": fmt.Sprintf("0x%040x", i),
	}
}

func TestFetchUsersSinglePage(t *testing.T) {
	server, _ := graphServer(t, "users", map[string][]map[string]string{
		"": {account(1), account(2)},
	})

	fetcher := NewCompoundGraphFetcher(server.URL, 3)
	page, err := fetcher.FetchUsers(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, page.HasMore)
	assert.Equal(t, "id-2", page.LastID)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0x01"),
		common.HexToAddress("0x02"),
	}, page.Users)
}

func TestFetchUsersPagination(t *testing.T) {
	// a full page signals more data; the next cursor picks up after it
	server, cursors := graphServer(t, "users", map[string][]map[string]string{
		"":     {account(1), account(2)},
		"id-2": {account(3)},
	})

	fetcher := NewCompoundGraphFetcher(server.URL, 2)

	page, err := fetcher.FetchUsers(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	assert.Equal(t, "id-2", page.LastID)

	page, err = fetcher.FetchUsers(context.Background(), page.LastID)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Equal(t, "id-3", page.LastID)

	assert.Equal(t, []string{"", "id-2"}, *cursors)
}

func TestFetchUsersEmpty(t *testing.T) {
	server, _ := graphServer(t, "users", map[string][]map[string]string{})

	fetcher := NewCompoundGraphFetcher(server.URL, 2)
	page, err := fetcher.FetchUsers(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, page.HasMore)
	assert.Empty(t, page.Users)
	assert.Equal(t, "", page.LastID)
}

func TestFetchUsersAaveRoot(t *testing.T) {
	server, _ := graphServer(t, "accounts", map[string][]map[string]string{
		"": {account(7)},
	})

	fetcher := NewAaveGraphFetcher(server.URL, 2)
	page, err := fetcher.FetchUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.HexToAddress("0x07")}, page.Users)
}

func TestFetchUsersGraphErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"boom"}]}`)
	}))
	defer server.Close()

	fetcher := NewCompoundGraphFetcher(server.URL, 2)
	_, err := fetcher.FetchUsers(context.Background(), "")
	assert.ErrorContains(t, err, "boom")
}

func TestFetchUsersHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewCompoundGraphFetcher(server.URL, 2)
	_, err := fetcher.FetchUsers(context.Background(), "")
	assert.ErrorContains(t, err, "502")
}

func TestFetchUsersWrongRoot(t *testing.T) {
	server, _ := graphServer(t, "accounts", map[string][]map[string]string{
		"": {account(1)},
	})

	// compound fetcher expects "users"
	fetcher := NewCompoundGraphFetcher(server.URL, 2)
	_, err := fetcher.FetchUsers(context.Background(), "")
	assert.ErrorContains(t, err, "users")
}

func TestDefaultBatchSize(t *testing.T) {
	fetcher := NewCompoundGraphFetcher("http://localhost", 0)
	assert.Equal(t, DefaultBatchSize, fetcher.BatchSize)
}
