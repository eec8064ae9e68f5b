package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFixedDepositRate(t *testing.T) {
	tests := []struct {
		tenure int
		want   string
	}{
		{3, "5.5"},
		{6, "5.5"},
		{7, "6"},
		{12, "6"},
		{24, "6.5"},
		{25, "7"},
	}

	for _, tt := range tests {
		got := FixedDepositRate(tt.tenure)
		require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "tenure %d: got %s", tt.tenure, got)
	}
}

func TestCalculateMaturity(t *testing.T) {
	tests := []struct {
		principal string
		tenure    int
		want      string
	}{
		{"10000", 12, "10600.00"},
		{"10000", 6, "10271.32"},
		{"25000", 24, "28355.62"},
		{"5000", 36, "6125.22"},
		{"10000", 3, "10134.75"},
	}

	for _, tt := range tests {
		principal := decimal.RequireFromString(tt.principal)

		got := CalculateMaturity(principal, FixedDepositRate(tt.tenure), tt.tenure)

		require.Equal(t, tt.want, got.StringFixed(2), "principal %s tenure %d", tt.principal, tt.tenure)
	}
}

func TestMaturityDate(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), MaturityDate(start, 18))
}

func TestFixedDepositDescription(t *testing.T) {
	require.Equal(t, "Fixed deposit creation for 12 months", FixedDepositDescription(12))
}
