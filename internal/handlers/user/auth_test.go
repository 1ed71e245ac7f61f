package user

import (
	"net/http"
	"testing"
)

func TestLoginRoleGate(t *testing.T) {
	cases := []struct {
		name      string
		stored    string
		requested string
		status    int
	}{
		{"storefront user on storefront", "user", "user", 0},
		{"admin on back office", "admin", "admin", 0},
		{"user credential on admin surface", "user", "admin", http.StatusForbidden},
		{"admin credential on storefront", "admin", "user", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := roleGate(tc.stored, tc.requested)
			if status != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, status)
			}
			if status == 0 {
				if body != nil {
					t.Errorf("allowed sign-in carried a refusal body: %v", body)
				}
				return
			}
			// the refusal names the stored role, never the requested one
			if body["role"] != tc.stored {
				t.Errorf("expected stored role %q in the refusal, got %v", tc.stored, body["role"])
			}
		})
	}
}
