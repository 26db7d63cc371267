package hive

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is a parsed amount string such as "12.345 HIVE"
type Asset struct {
	Amount decimal.Decimal
	Symbol string
}

// ParseAsset parses a condenser amount string ("<amount> <symbol>")
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("malformed asset string %q", s)
	}

	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return Asset{}, fmt.Errorf("malformed asset amount %q: %w", parts[0], err)
	}

	return Asset{Amount: amount, Symbol: parts[1]}, nil
}

// String formats the asset back into condenser form
func (a Asset) String() string {
	places := int32(3)
	if a.Symbol == "VESTS" {
		places = 6
	}
	return a.Amount.StringFixed(places) + " " + a.Symbol
}
