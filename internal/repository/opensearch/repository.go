package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
)

const defaultSearchSize = 50

// TicketIndex stores ticket documents in one OpenSearch index per tenant.
type TicketIndex struct {
	client *opensearch.Client
	config *config.OpenSearchConfig
}

func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) *TicketIndex {
	return &TicketIndex{
		client: client,
		config: config,
	}
}

// Index upserts a ticket document into its tenant's index.
func (r *TicketIndex) Index(ctx context.Context, doc *domain.TicketDocument) error {
	if doc.TenantID == "" {
		return fmt.Errorf("ticket document %s has no tenant", doc.ID)
	}

	if err := r.CreateIndex(ctx, doc.TenantID); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket document: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      r.config.GetIndexName(doc.TenantID),
		DocumentID: doc.ID,
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

// Search runs a full-text query against one tenant's tickets only.
func (r *TicketIndex) Search(ctx context.Context, tenantID string, query domain.TicketSearchQuery) ([]domain.TicketDocument, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant id is required")
	}

	queryJSON, err := json.Marshal(buildSearchQuery(tenantID, query))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexName(tenantID)},
		Body:  strings.NewReader(string(queryJSON)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// no index yet means no tickets indexed for the tenant
		if res.StatusCode == http.StatusNotFound {
			return []domain.TicketDocument{}, nil
		}
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source domain.TicketDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	docs := make([]domain.TicketDocument, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

func buildSearchQuery(tenantID string, query domain.TicketSearchQuery) map[string]any {
	must := make([]map[string]any, 0)
	if text := strings.TrimSpace(query.Text); text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"subject^3", "number^2", "description", "module", "feature", "client_name"},
			},
		})
	}

	filter := []map[string]any{createTermQuery("tenant_id", tenantID)}
	if query.ClientID != "" {
		filter = append(filter, createTermQuery("client_id", query.ClientID))
	}

	size := query.Size
	if size <= 0 {
		size = defaultSearchSize
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"size": size,
		"sort": []any{
			"_score",
			map[string]any{"created_at": map[string]any{"order": "desc"}},
		},
	}
}

func createTermQuery(field, value string) map[string]any {
	return map[string]any{
		"term": map[string]any{
			field: value,
		},
	}
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"tenant_id": { "type": "keyword" },
			"number": { "type": "keyword" },
			"client_id": { "type": "keyword" },
			"client_name": { "type": "text" },
			"assigned_agent_id": { "type": "keyword" },
			"assigned_agent_name": { "type": "text" },
			"subject": { "type": "text" },
			"description": { "type": "text" },
			"priority": { "type": "keyword" },
			"status": { "type": "keyword" },
			"module": { "type": "text" },
			"feature": { "type": "text" },
			"attachment_url": { "type": "keyword", "index": false },
			"created_at": { "type": "date" },
			"updated_at": { "type": "date" }
		}
	},
	"settings": {
		"index": {
			"number_of_shards": 1,
			"number_of_replicas": 1,
			"refresh_interval": "1s"
		}
	}
}`

// CreateIndex creates the tenant's ticket index when it does not exist yet.
func (r *TicketIndex) CreateIndex(ctx context.Context, tenantID string) error {
	indexName := r.config.GetIndexName(tenantID)

	exists := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(indexMapping),
	}

	res, err = create.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}

func (r *TicketIndex) DeleteIndex(ctx context.Context, tenantID string) error {
	req := opensearchapi.IndicesDeleteRequest{
		Index: []string{r.config.GetIndexName(tenantID)},
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting index: %s", res.String())
	}

	return nil
}
