package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Price is the normalized numeric form of a book price.
//
// The catalog was migrated from a MongoDB deployment, so prices still reach us
// in three shapes: a plain number, a numeric string, or the extended-JSON
// wrapper {"$numberDecimal": "120.00"}. All arithmetic in this codebase runs
// on the normalized float64 — never on the raw representation.
type Price float64

type numberDecimal struct {
	NumberDecimal string `json:"$numberDecimal"`
}

func (p *Price) UnmarshalJSON(data []byte) error {
	// 1. Plain JSON number
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = Price(f)
		return nil
	}

	// 2. Numeric string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid price string %q", s)
		}
		*p = Price(f)
		return nil
	}

	// 3. Mongo extended-JSON wrapper
	var nd numberDecimal
	if err := json.Unmarshal(data, &nd); err == nil && nd.NumberDecimal != "" {
		f, err := strconv.ParseFloat(nd.NumberDecimal, 64)
		if err != nil {
			return fmt.Errorf("invalid $numberDecimal %q", nd.NumberDecimal)
		}
		*p = Price(f)
		return nil
	}

	return fmt.Errorf("unsupported price representation: %s", data)
}

// MarshalJSON always emits the plain numeric form.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

func (p Price) Float64() float64 {
	return float64(p)
}
