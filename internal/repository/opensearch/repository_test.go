package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*TicketIndex, *[]recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	return NewRepository(client, &config.OpenSearchConfig{}), &requests
}

func TestSearch_QueriesOnlyTheTenantIndex(t *testing.T) {
	index, requests := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"id":"t-1","tenant_id":"tenant-a","number":"TKT-000001","subject":"Printer jam"}}]}}`)
	})

	docs, err := index.Search(context.Background(), "tenant-a", domain.TicketSearchQuery{Text: "printer", ClientID: "client-1"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "TKT-000001", docs[0].Number)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "/tickets_tenant-a/_search", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	filters := body["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
	assert.Len(t, filters, 2)
	assert.Contains(t, req.Body, `"tenant_id":"tenant-a"`)
	assert.Contains(t, req.Body, `"client_id":"client-1"`)
}

func TestSearch_MissingIndexIsEmpty(t *testing.T) {
	index, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"}}`)
	})

	docs, err := index.Search(context.Background(), "tenant-a", domain.TicketSearchQuery{Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIndex_CreatesIndexThenStoresDocument(t *testing.T) {
	index, requests := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	})

	doc := &domain.TicketDocument{ID: "t-1", TenantID: "tenant-a", Subject: "Printer jam"}
	require.NoError(t, index.Index(context.Background(), doc))

	require.Len(t, *requests, 3)
	assert.Equal(t, http.MethodHead, (*requests)[0].Method)
	assert.Equal(t, "/tickets_tenant-a", (*requests)[1].Path)
	assert.True(t, strings.HasPrefix((*requests)[2].Path, "/tickets_tenant-a/_doc/t-1"))
	assert.Contains(t, (*requests)[2].Body, `"subject":"Printer jam"`)
}

func TestIndex_RejectsDocumentWithoutTenant(t *testing.T) {
	index, requests := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {})

	err := index.Index(context.Background(), &domain.TicketDocument{ID: "t-1"})
	assert.Error(t, err)
	assert.Empty(t, *requests)
}
