// Package rest implements endpoint.TableStore over a Supabase (PostgREST) HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

const restPrefix = "/rest/v1/"

// DefaultPageSize is the Range window of one Select request. It matches the
// default db-max-rows of Supabase.
const DefaultPageSize = 1000

// errRangeNotSatisfiable is returned by doRequest on 416, an offset past the last row
var errRangeNotSatisfiable = errors.New("range not satisfiable")

// errorResponse is the PostgREST error body
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Store представляет HTTP клиент PostgREST одной реплики
type Store struct {
	httpClient *http.Client
	baseURL    string
	key        string
	pageSize   int
}

var _ endpoint.TableStore = (*Store)(nil)

// New creates a store for baseURL authenticated with key. timeout bounds a
// single HTTP request, zero means endpoint.DefaultCallTimeout.
// No request is made here; Probe checks reachability.
func New(baseURL, key string, timeout time.Duration, logger *slog.Logger) (*Store, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	info, err := InspectKey(key)
	if err != nil {
		return nil, err
	}
	if info.Expired(time.Now()) {
		return nil, fmt.Errorf("%w at %s", ErrKeyExpired, info.ExpiresAt.Format(time.RFC3339))
	}
	if info.IsJWT {
		logger.Debug("API key inspected", "url", baseURL, "role", info.Role, "expires_at", info.ExpiresAt)
		if info.Role == "anon" {
			logger.Warn("API key has anon role, row level security may reject writes", "url", baseURL)
		}
	}

	if timeout <= 0 {
		timeout = endpoint.DefaultCallTimeout
	}

	return &Store{
		baseURL:  strings.TrimRight(baseURL, "/"),
		key:      key,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: timeout,
			// Копируем заголовки авторизации при редиректе
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
					req.Header.Set("apikey", via[0].Header.Get("apikey"))
				}
				return nil
			},
		},
	}, nil
}

// Dialer returns an endpoint.Dialer for baseURL. The returned store is probed by the client.
func Dialer(baseURL, key string, timeout time.Duration, logger *slog.Logger) endpoint.Dialer {
	return func(ctx context.Context) (endpoint.TableStore, error) {
		return New(baseURL, key, timeout, logger)
	}
}

// Select выполняет GET /rest/v1/{table}?{column}={op}.{value}.
// PostgREST caps every response at db-max-rows, so rows are read page by page
// with Range headers until Content-Range says the set is complete. A failed
// page fails the whole Select.
func (s *Store) Select(ctx context.Context, table models.Table, filter endpoint.Filter) ([]models.Record, error) {
	if err := endpoint.ValidateTable(table); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set(filter.Column, string(filter.Op)+"."+formatValue(filter.Value))
	query.Set("order", table.IDColumn+".asc")

	records := []models.Record{}
	for {
		offset := len(records)

		headers := http.Header{}
		headers.Set("Range-Unit", "items")
		headers.Set("Range", fmt.Sprintf("%d-%d", offset, offset+s.pageSize-1))
		headers.Set("Prefer", "count=exact")

		var page []models.Record
		respHeader, err := s.doRequest(ctx, http.MethodGet, table.Name, query, headers, nil, &page)
		if errors.Is(err, errRangeNotSatisfiable) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s at offset %d: %w", table.Name, offset, err)
		}
		records = append(records, page...)

		contentRange := respHeader.Get("Content-Range")
		if contentRange == "" || len(page) == 0 {
			// без Content-Range сервер не поддерживает Range и вернул всё сразу
			break
		}
		if total, ok := parseContentRangeTotal(contentRange); ok && len(records) >= total {
			break
		}
	}

	return records, nil
}

// parseContentRangeTotal returns N of "0-999/N". An unknown total ("*") is not ok.
func parseContentRangeTotal(v string) (int, bool) {
	_, total, found := strings.Cut(v, "/")
	if !found || total == "*" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Upsert выполняет POST с resolution=merge-duplicates по колонке идентификатора
func (s *Store) Upsert(ctx context.Context, table models.Table, record models.Record) error {
	if err := endpoint.ValidateTable(table); err != nil {
		return err
	}
	if _, err := record.ID(table.IDColumn); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("on_conflict", table.IDColumn)

	headers := http.Header{}
	headers.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	if _, err := s.doRequest(ctx, http.MethodPost, table.Name, query, headers, []models.Record{record}, nil); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table.Name, err)
	}
	return nil
}

// UpdateField выполняет PATCH /rest/v1/{table}?{id}=eq.{value}
func (s *Store) UpdateField(ctx context.Context, table models.Table, id any, field string, value any) error {
	if err := endpoint.ValidateTable(table); err != nil {
		return err
	}
	if err := endpoint.Eq(field, value).Validate(); err != nil {
		return err
	}

	query := url.Values{}
	query.Set(table.IDColumn, "eq."+formatValue(id))
	query.Set("select", table.IDColumn)

	headers := http.Header{}
	headers.Set("Prefer", "return=representation")

	var updated []models.Record
	body := models.Record{field: value}
	if _, err := s.doRequest(ctx, http.MethodPatch, table.Name, query, headers, body, &updated); err != nil {
		return fmt.Errorf("failed to update %s.%s: %w", table.Name, field, err)
	}

	if len(updated) == 0 {
		return endpoint.ErrRecordNotFound
	}
	return nil
}

// Probe requests the API root
func (s *Store) Probe(ctx context.Context) error {
	_, err := s.doRequest(ctx, http.MethodGet, "", nil, nil, nil, nil)
	return err
}

// Close releases idle connections
func (s *Store) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// doRequest выполняет HTTP запрос к PostgREST и возвращает заголовки ответа
func (s *Store) doRequest(ctx context.Context, method, table string, query url.Values, headers http.Header, body, result any) (http.Header, error) {
	u := s.baseURL + restPrefix + url.PathEscape(table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		return resp.Header, errRangeNotSatisfiable
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return resp.Header, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return resp.Header, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(respBody))
		// числовые идентификаторы не должны терять точность
		dec.UseNumber()
		if err := dec.Decode(result); err != nil {
			return resp.Header, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.Header, nil
}

// classifyTransportError marks connection failures as unreachable.
// Timeouts stay plain errors: they fail one call, not the endpoint.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("request failed: %w", err)
	}
	return fmt.Errorf("%w: %w", endpoint.ErrUnreachable, err)
}

// formatValue renders a filter operand the way PostgREST expects it
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
