package models

import (
	"errors"
	"regexp"

	"github.com/gocql/gocql"
)

type Address struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	Line1     string     `json:"line1"`
	Line2     string     `json:"line2,omitempty"`
	Landmark  string     `json:"landmark,omitempty"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Pincode   string     `json:"pincode"`
	Type      string     `json:"type"` // Home, Work, Other
	IsDefault bool       `json:"is_default"`
}

// IndianStates is the closed set of states and union territories accepted
// for shipping addresses.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi",
	"Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Validate checks the closed enums and pincode format. The backend is the
// source of truth for addresses, so nothing invalid is ever persisted.
func (a Address) Validate() error {
	if a.Line1 == "" {
		return errors.New("address line 1 is required")
	}
	if a.City == "" {
		return errors.New("city is required")
	}
	if !IsIndianState(a.State) {
		return errors.New("unknown state: " + a.State)
	}
	if !pincodeRe.MatchString(a.Pincode) {
		return errors.New("pincode must be a valid 6-digit code")
	}
	switch a.Type {
	case "Home", "Work", "Other":
	default:
		return errors.New("address type must be Home, Work or Other")
	}
	return nil
}

func IsIndianState(state string) bool {
	for _, s := range IndianStates {
		if s == state {
			return true
		}
	}
	return false
}
