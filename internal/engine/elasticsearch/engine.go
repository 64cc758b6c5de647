package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/engine"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

// Engine is an Elasticsearch-backed implementation of the SearchEngine interface.
type Engine struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

var _ engine.SearchEngine = (*Engine)(nil)

// esErrorResponse is used to decode Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// esGetResponse is the structure used to decode document get responses.
type esGetResponse struct {
	Found  bool           `json:"found"`
	Source domain.Product `json:"_source"`
}

// esBulkResponse is the structure used to decode bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// New creates a new Elasticsearch engine connected to the given URL.
// It ensures the products index exists, creating it if necessary; a
// bootstrap failure is returned so the caller can abort startup rather
// than run without a usable index. If indexName is empty, DefaultIndexName
// is used.
func New(esURL string, indexName string, logger *slog.Logger) (*Engine, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	e := &Engine{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}

	if err := e.ensureIndex(); err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to ensure index: %w", err)
	}

	return e, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ensureIndex checks whether the products index exists and creates it if not.
// Safe to call on every startup.
func (e *Engine) ensureIndex() error {
	res, err := e.client.Indices.Exists([]string{e.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusOK {
		e.logger.Info("elasticsearch index already exists", "index", e.indexName)
		return nil
	}

	mapping := buildIndexMapping()
	res, err = e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("create index: %w", e.decodeError(res.Body, res.Status()))
	}

	e.logger.Info("elasticsearch index created", "index", e.indexName)
	return nil
}

// Index adds or replaces a single product. The write waits for a refresh so
// it is visible to searches before this call returns.
func (e *Engine) Index(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal product: %w", err)
	}

	res, err := e.client.Index(
		e.indexName,
		bytes.NewReader(data),
		e.client.Index.WithDocumentID(product.ID),
		e.client.Index.WithRefresh("wait_for"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return apperrors.Unavailable("elasticsearch", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %w", e.decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("indexed product", "id", product.ID, "title", product.Title)
	return nil
}

// BulkIndex adds or replaces multiple products using the bulk NDJSON API.
// Each document's outcome is reported individually; the returned error is
// reserved for failures of the batch call itself.
func (e *Engine) BulkIndex(ctx context.Context, products []domain.Product) ([]domain.BulkItem, error) {
	if len(products) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	for i := range products {
		action := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    products[i].ID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return nil, fmt.Errorf("elasticsearch bulk index: encode action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(products[i]); err != nil {
			return nil, fmt.Errorf("elasticsearch bulk index: encode document: %w", err)
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithRefresh("wait_for"),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, apperrors.Unavailable("elasticsearch", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch bulk index: %w", e.decodeError(res.Body, res.Status()))
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return nil, fmt.Errorf("elasticsearch bulk index: decode response: %w", err)
	}

	items := make([]domain.BulkItem, 0, len(bulkResp.Items))
	failed := 0
	for _, item := range bulkResp.Items {
		bi := domain.BulkItem{ID: item.Index.ID}
		if item.Index.Error.Type != "" {
			bi.Error = fmt.Sprintf("%s: %s", item.Index.Error.Type, item.Index.Error.Reason)
			failed++
		}
		items = append(items, bi)
	}

	if failed > 0 {
		e.logger.Warn("bulk index completed with item failures",
			"total", len(items), "failed", failed)
	} else {
		e.logger.Info("bulk indexed products", "count", len(items))
	}
	return items, nil
}

// Get fetches a product document by ID.
func (e *Engine) Get(ctx context.Context, id string) (*domain.Product, error) {
	res, err := e.client.Get(
		e.indexName,
		id,
		e.client.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, apperrors.Unavailable("elasticsearch", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("product", id)
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch get: %w", e.decodeError(res.Body, res.Status()))
	}

	var getResp esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&getResp); err != nil {
		return nil, fmt.Errorf("elasticsearch get: decode response: %w", err)
	}
	if !getResp.Found {
		return nil, apperrors.NotFound("product", id)
	}

	return &getResp.Source, nil
}

// Delete removes a product by ID. A missing document is reported as
// not-found, distinct from engine failures.
func (e *Engine) Delete(ctx context.Context, id string) error {
	res, err := e.client.Delete(
		e.indexName,
		id,
		e.client.Delete.WithRefresh("wait_for"),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return apperrors.Unavailable("elasticsearch", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("product", id)
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch delete: %w", e.decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("deleted product", "id", id)
	return nil
}

// decodeError extracts the ES error type and reason from an error response
// body, falling back to the HTTP status line.
func (e *Engine) decodeError(body io.Reader, status string) error {
	var errResp esErrorResponse
	if decErr := json.NewDecoder(body).Decode(&errResp); decErr == nil && errResp.Error.Type != "" {
		return fmt.Errorf("%s: %s", errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Errorf("unexpected status %s", status)
}
