package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kb-assessor/config"
	"kb-assessor/models"
)

// listPageSize paginates list requests beyond the instance's default cap.
const listPageSize = 100

// ServiceNowClient talks to the ServiceNow table API over basic auth.
type ServiceNowClient struct {
	baseURL      string
	username     string
	password     string
	table        string
	bodyField    string
	defaultQuery string
	userAgent    string
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewServiceNowClient(cfg *config.ServiceNowConfig, appCfg *config.AppConfig, logger *slog.Logger) (*ServiceNowClient, error) {
	if cfg.BaseURL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("servicenow configuration incomplete")
	}

	httpClient, err := newHTTPClient(appCfg.RequestTimeout, cfg.VerifySSL, cfg.CABundle)
	if err != nil {
		return nil, fmt.Errorf("failed to build servicenow http client: %w", err)
	}

	return &ServiceNowClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		username:     cfg.Username,
		password:     cfg.Password,
		table:        cfg.Table,
		bodyField:    cfg.BodyField,
		defaultQuery: cfg.Query,
		userAgent:    appCfg.UserAgent,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// FetchUpdatedArticles lists article summaries page by page until a short
// page signals the end. When full is set the date-based clauses of the
// configured base query are stripped and since is ignored.
func (c *ServiceNowClient) FetchUpdatedArticles(ctx context.Context, since string, full bool) ([]models.KBSummary, error) {
	var all []models.KBSummary

	offset := 0

	for {
		params := url.Values{}
		params.Set("sysparm_query", c.buildQuery(since, full))
		params.Set("sysparm_fields", "number,sys_updated_on,short_description")
		params.Set("sysparm_display_value", "false")
		params.Set("sysparm_exclude_reference_link", "true")
		params.Set("sysparm_limit", strconv.Itoa(listPageSize))
		params.Set("sysparm_offset", strconv.Itoa(offset))

		var page struct {
			Result []models.KBSummary `json:"result"`
		}

		if err := c.request(ctx, params, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Result...)

		if len(page.Result) < listPageSize {
			break
		}

		offset += listPageSize
	}

	c.logger.InfoContext(ctx, "fetched article summaries",
		"count", len(all),
		"since", since,
		"full", full)

	return all, nil
}

// FetchArticleBody retrieves the full published record for one article,
// including the configured body field. Returns nil when no published record
// matches the number.
func (c *ServiceNowClient) FetchArticleBody(ctx context.Context, number string) (*models.KBRecord, error) {
	filters := make([]string, 0, 4)
	if c.defaultQuery != "" {
		filters = append(filters, c.defaultQuery)
	}

	// Only the published revision carries the body the model should judge.
	filters = append(filters,
		"workflow_state=published",
		"sys_class_name=kb_knowledge",
		"number="+number,
	)

	params := url.Values{}
	params.Set("sysparm_query", strings.Join(filters, "^"))
	params.Set("sysparm_fields", strings.Join([]string{
		"number", "short_description", "sys_updated_on", c.bodyField,
	}, ","))
	params.Set("sysparm_limit", "1")
	params.Set("sysparm_display_value", "false")

	var page struct {
		Result []map[string]string `json:"result"`
	}

	if err := c.request(ctx, params, &page); err != nil {
		return nil, err
	}

	if len(page.Result) == 0 {
		c.logger.WarnContext(ctx, "no published record found", "number", number)
		return nil, nil
	}

	row := page.Result[0]

	return &models.KBRecord{
		Number:           row["number"],
		ShortDescription: row["short_description"],
		SysUpdatedOn:     row["sys_updated_on"],
		Body:             row[c.bodyField],
	}, nil
}

// buildQuery assembles the sysparm_query for list requests. A full refresh
// keeps only the non-date clauses of the base query; an incremental fetch
// appends an updated-at-or-after clause when since is supplied.
func (c *ServiceNowClient) buildQuery(since string, full bool) string {
	var filters []string

	if full {
		for _, part := range strings.Split(c.defaultQuery, "^") {
			if part == "" || isDateClause(part) {
				continue
			}

			filters = append(filters, part)
		}

		return strings.Join(filters, "^")
	}

	if c.defaultQuery != "" {
		filters = append(filters, c.defaultQuery)
	}

	if since != "" {
		filters = append(filters, "sys_updated_on>="+since)
	}

	return strings.Join(filters, "^")
}

// isDateClause matches filter clauses that constrain by update time, either
// directly or through server-side relative-date functions.
func isDateClause(clause string) bool {
	lower := strings.ToLower(clause)

	for _, marker := range []string{"sys_updated_on", "javascript:", "gs.days", "gs.months", "gs.years"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

func (c *ServiceNowClient) request(ctx context.Context, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/api/now/table/%s?%s", c.baseURL, url.PathEscape(c.table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamRequest, err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "servicenow request failed", "error", err)
		return fmt.Errorf("%w: %v", models.ErrUpstreamRequest, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", models.ErrUpstreamRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "servicenow returned non-2xx status",
			"status", resp.StatusCode,
			"body", string(body))

		return fmt.Errorf("%w: servicenow status %d: %s", models.ErrUpstreamRequest, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: unexpected servicenow payload: %v", models.ErrUpstreamRequest, err)
	}

	return nil
}
