package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
)

// AccountNumberPrefix is prepended to every sequence-issued account number.
const AccountNumberPrefix = "PB"

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// SequenceAccountNumberGenerator draws account numbers from account_number_seq.
type SequenceAccountNumberGenerator struct {
	queries *generated.Queries
}

// NewSequenceAccountNumberGenerator creates a generator backed by the pool.
func NewSequenceAccountNumberGenerator(pool *pgxpool.Pool) *SequenceAccountNumberGenerator {
	return newSequenceAccountNumberGeneratorWithDB(pool)
}

func newSequenceAccountNumberGeneratorWithDB(db generated.DBTX) *SequenceAccountNumberGenerator {
	return &SequenceAccountNumberGenerator{queries: generated.New(db)}
}

// Next returns the next candidate, e.g. PB0000000042.
func (g *SequenceAccountNumberGenerator) Next(ctx context.Context) (string, error) {
	n, err := g.queries.NextAccountNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("next account number: %w", err)
	}

	return FormatAccountNumber(n), nil
}

// FormatAccountNumber renders a sequence value as an account number.
func FormatAccountNumber(n int64) string {
	return fmt.Sprintf("%s%010d", AccountNumberPrefix, n)
}
