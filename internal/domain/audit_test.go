package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMarshalStateFlattensStructs(t *testing.T) {
	state := MarshalState(struct {
		Number  string          `json:"number"`
		Balance decimal.Decimal `json:"balance"`
	}{Number: "PB0000000001", Balance: decimal.RequireFromString("10.50")})

	if state["number"] != "PB0000000001" || state["balance"] != "10.5" {
		t.Fatalf("unexpected state %v", state)
	}
}

func TestMarshalStateNil(t *testing.T) {
	if MarshalState(nil) != nil {
		t.Fatal("expected nil state for nil input")
	}
}

func TestAuditFilterValidate(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)

	tests := []struct {
		name   string
		filter AuditFilter
		want   error
	}{
		{"open range", AuditFilter{}, nil},
		{"start only", AuditFilter{StartDate: &feb}, nil},
		{"ordered", AuditFilter{StartDate: &jan, EndDate: &feb}, nil},
		{"inverted", AuditFilter{StartDate: &feb, EndDate: &jan}, ErrInvalidAuditRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.filter.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}
