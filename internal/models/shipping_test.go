package models

import "testing"

func TestShippingFee(t *testing.T) {
	cases := []struct {
		units int
		want  float64
	}{
		{0, 0},
		{-2, 0},
		{1, 49},
		{4, 49},
		{5, 49},
		{6, 98},
		{10, 98},
		{11, 147},
	}

	for _, tc := range cases {
		if got := ShippingFee(tc.units); got != tc.want {
			t.Errorf("ShippingFee(%d) = %v, want %v", tc.units, got, tc.want)
		}
	}
}
