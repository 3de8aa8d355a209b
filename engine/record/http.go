package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compozy/usertable/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const usersPath = "/users"

// HTTPSource fetches users from `{baseURL}/users`. Failures are returned
// as-is; there is no automatic retry.
type HTTPSource struct {
	client  *resty.Client
	timeout time.Duration
}

func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("http source requires a base URL")
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &HTTPSource{client: client, timeout: timeout}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Record, error) {
	log := logger.FromContext(ctx)
	requestID := uuid.NewString()
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		Get(usersPath)
	if err != nil {
		return nil, newFetchError("http", transportError("http", s.timeout, err))
	}
	if resp.IsError() {
		return nil, newFetchError("http", fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}
	records, err := parseUsers(resp.Body())
	if err != nil {
		return nil, newFetchError("http", err)
	}
	log.Debug("fetched users", "count", len(records), "request_id", requestID, "duration", resp.Time())
	return records, nil
}

// parseUsers accepts either a bare JSON array or an object with a `data`
// array and coerces each entry into a Record.
func parseUsers(body []byte) ([]Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON payload")
	}
	payload := gjson.ParseBytes(body)
	if !payload.IsArray() {
		payload = payload.Get("data")
	}
	if !payload.IsArray() {
		return nil, fmt.Errorf("payload is not a list of users")
	}
	items := payload.Array()
	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := parseUser(item)
		if err != nil {
			return nil, fmt.Errorf("user at index %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseUser(item gjson.Result) (Record, error) {
	id := item.Get("id")
	if !id.Exists() || id.String() == "" {
		return Record{}, fmt.Errorf("missing id")
	}
	balance, err := parseBalance(item.Get("balance"))
	if err != nil {
		return Record{}, err
	}
	registeredAt, err := parseTimestamp(item.Get("registerAt"))
	if err != nil {
		return Record{}, err
	}
	active := item.Get("isActive")
	if !active.Exists() {
		active = item.Get("active")
	}
	return Record{
		ID:           id.String(),
		Name:         item.Get("name").String(),
		Email:        item.Get("email").String(),
		Balance:      balance,
		RegisteredAt: registeredAt,
		Active:       active.Bool(),
	}, nil
}

func parseBalance(v gjson.Result) (decimal.Decimal, error) {
	switch v.Type {
	case gjson.Number:
		return decimal.NewFromString(v.Raw)
	case gjson.String:
		if v.Str == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(v.Str)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid balance %q: %w", v.Str, err)
		}
		return d, nil
	default:
		return decimal.Zero, nil
	}
}

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseTimestamp(v gjson.Result) (time.Time, error) {
	switch v.Type {
	case gjson.Number:
		return time.UnixMilli(v.Int()).UTC(), nil
	case gjson.String:
		return ParseTimestamp(v.Str)
	default:
		return time.Time{}, nil
	}
}

// ParseTimestamp parses the timestamp layouts user payloads are known to use.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}
