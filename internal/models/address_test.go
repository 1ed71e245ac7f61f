package models

import "testing"

func validAddress() Address {
	return Address{
		Line1:   "12 Mohalla Qazi",
		City:    "Deoband",
		State:   "Uttar Pradesh",
		Pincode: "247554",
		Type:    "Home",
	}
}

func TestAddressValidate(t *testing.T) {
	if err := validAddress().Validate(); err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Address)
	}{
		{"missing line1", func(a *Address) { a.Line1 = "" }},
		{"missing city", func(a *Address) { a.City = "" }},
		{"unknown state", func(a *Address) { a.State = "Punjab, Pakistan" }},
		{"pincode too short", func(a *Address) { a.Pincode = "2475" }},
		{"pincode leading zero", func(a *Address) { a.Pincode = "047554" }},
		{"pincode non-numeric", func(a *Address) { a.Pincode = "24755a" }},
		{"bad type", func(a *Address) { a.Type = "Office" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAddress()
			tc.mutate(&a)
			if err := a.Validate(); err == nil {
				t.Errorf("expected validation error, got none: %+v", a)
			}
		})
	}
}

func TestIsIndianState(t *testing.T) {
	if !IsIndianState("Delhi") {
		t.Error("Delhi should be accepted")
	}
	if !IsIndianState("Jammu and Kashmir") {
		t.Error("union territories should be accepted")
	}
	if IsIndianState("delhi") {
		t.Error("state match is case sensitive")
	}
}
