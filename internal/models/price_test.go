package models

import (
	"encoding/json"
	"testing"
)

func TestPriceUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain number", `120.5`, 120.5},
		{"integer number", `300`, 300},
		{"numeric string", `"99.99"`, 99.99},
		{"number decimal wrapper", `{"$numberDecimal":"120.00"}`, 120},
		{"zero", `0`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Price
			if err := json.Unmarshal([]byte(tc.input), &p); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.input, err)
			}
			if p.Float64() != tc.want {
				t.Errorf("got %v, want %v", p.Float64(), tc.want)
			}
		})
	}
}

func TestPriceUnmarshalRejectsGarbage(t *testing.T) {
	for _, input := range []string{`"abc"`, `{"$numberDecimal":"abc"}`, `true`, `{"other":1}`} {
		var p Price
		if err := json.Unmarshal([]byte(input), &p); err == nil {
			t.Errorf("expected error for %s, got %v", input, p)
		}
	}
}

func TestPriceMarshalNormalizes(t *testing.T) {
	var p Price
	if err := json.Unmarshal([]byte(`{"$numberDecimal":"149.50"}`), &p); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "149.5" {
		t.Errorf("got %s, want 149.5", out)
	}
}
