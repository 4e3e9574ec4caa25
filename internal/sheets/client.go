package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var locatorPattern = regexp.MustCompile(`/spreadsheets/d/([A-Za-z0-9_-]{20,})`)

// The gviz endpoint wraps its JSON body in a fixed function-call envelope.
var envelopePattern = regexp.MustCompile(`(?s)google\.visualization\.Query\.setResponse\((.*)\);?\s*$`)

// ExtractSheetID pulls the spreadsheet ID out of a user supplied URL.
func ExtractSheetID(locator string) (string, error) {
	match := locatorPattern.FindStringSubmatch(locator)
	if match == nil {
		return "", ErrInvalidLocator
	}
	return match[1], nil
}

// Client fetches published spreadsheet tabs over the gviz endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type gvizCell struct {
	V any `json:"v"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCol struct {
	Label string `json:"label"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizResponse struct {
	Table *gvizTable `json:"table"`
}

// FetchSheet retrieves one tab of a published spreadsheet as ordered rows.
// A single attempt is made; retry policy is left to the caller.
func (c *Client) FetchSheet(ctx context.Context, sheetID string, gid int) ([]Row, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:json&gid=%d", c.baseURL, sheetID, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	match := envelopePattern.FindSubmatch(body)
	if match == nil {
		return nil, ErrNotPublic
	}

	var payload gvizResponse
	if err := json.Unmarshal(match[1], &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return tableToRows(payload.Table), nil
}

// tableToRows maps column labels to cell values, lower-casing and trimming
// headers. Columns with blank labels fall back to a positional name.
func tableToRows(table *gvizTable) []Row {
	if table == nil || len(table.Cols) == 0 || len(table.Rows) == 0 {
		return []Row{}
	}

	headers := make([]string, len(table.Cols))
	for i, col := range table.Cols {
		label := strings.TrimSpace(strings.ToLower(col.Label))
		if label == "" {
			label = fmt.Sprintf("col_%d", i)
		}
		headers[i] = label
	}

	rows := make([]Row, 0, len(table.Rows))
	for _, raw := range table.Rows {
		row := make(Row, len(headers))
		for i, cell := range raw.C {
			if i >= len(headers) {
				break
			}
			if cell == nil {
				row[headers[i]] = nil
				continue
			}
			row[headers[i]] = cell.V
		}
		rows = append(rows, row)
	}
	return rows
}

// IsFatal reports whether err belongs to the adapter error taxonomy.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidLocator) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNotPublic) ||
		errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrFetch) ||
		errors.Is(err, ErrParse)
}
