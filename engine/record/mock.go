package record

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/compozy/usertable/pkg/logger"
	"github.com/shopspring/decimal"
)

const DefaultMockCount = 106

var (
	mockFirstNames = []string{
		"Andrew", "Alvaro", "Pedro", "John", "Sarah", "William", "Emma", "Ryan", "Michael", "Jennifer",
	}
	mockLastNames = []string{
		"Taylor", "Garcia", "Moreno", "Robinson", "White", "King", "Gonzalez", "Young", "Taylor", "King",
	}
	mockDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "mail.com"}
)

// MockSource generates a synthetic user list. The same seed and clock always
// produce the same records.
type MockSource struct {
	count int
	seed  uint64
	now   func() time.Time
}

type MockOption func(*MockSource)

func WithMockSeed(seed uint64) MockOption {
	return func(m *MockSource) {
		m.seed = seed
	}
}

func WithMockClock(now func() time.Time) MockOption {
	return func(m *MockSource) {
		m.now = now
	}
}

func NewMockSource(count int, opts ...MockOption) *MockSource {
	if count < 0 {
		count = 0
	}
	m := &MockSource{count: count, seed: 1, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockSource) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newFetchError("mock", err)
	}
	rng := rand.New(rand.NewPCG(m.seed, m.seed^0x9e3779b97f4a7c15))
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := m.now().UTC().Sub(start)
	if span <= 0 {
		span = time.Hour
	}
	records := make([]Record, m.count)
	for i := range records {
		first := mockFirstNames[rng.IntN(len(mockFirstNames))]
		last := mockLastNames[rng.IntN(len(mockLastNames))]
		domain := mockDomains[rng.IntN(len(mockDomains))]
		records[i] = Record{
			ID:           fmt.Sprintf("user-%d", i+1),
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domain),
			Balance:      decimal.NewFromInt(int64(rng.IntN(10000) + 1000)),
			RegisteredAt: start.Add(time.Duration(rng.Int64N(int64(span)))).Truncate(time.Second),
			Active:       rng.IntN(2) == 0,
		}
	}
	logger.FromContext(ctx).Debug("generated mock users", "count", len(records), "seed", m.seed)
	return records, nil
}
