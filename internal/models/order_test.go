package models

import "testing"

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderProcessing, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderShipped, true}, // skipping forward is allowed

		// never backwards
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderShipped, false},

		// cancelled is reachable from any non-terminal status
		{OrderPending, OrderCancelled, true},
		{OrderShipped, OrderCancelled, true},

		// terminal statuses go nowhere
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderDelivered, OrderCancelled, false},

		// no self transition, no unknown status
		{OrderPending, OrderPending, false},
		{OrderPending, "refunded", false},
		{"bogus", OrderShipped, false},
	}

	for _, tc := range cases {
		if got := CanTransitionOrder(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionOrder(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ValidOrderStatus("returned") {
		t.Error("expected unknown status to be invalid")
	}
}
