package payment

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCheckoutReceiptFitsGatewayLimit(t *testing.T) {
	// The gateway refuses receipts over 40 characters; both owner id
	// shapes (account uuid, guest_<uuid>) overflow without truncation.
	owners := []string{
		uuid.NewString(),
		"guest_" + uuid.NewString(),
	}
	for _, owner := range owners {
		receipt := checkoutReceipt(owner)
		if len(receipt) > 40 {
			t.Errorf("receipt for %q is %d chars, want <= 40", owner, len(receipt))
		}
		if !strings.HasPrefix(receipt, "maktaba_") {
			t.Errorf("receipt for %q lost its prefix: %q", owner, receipt)
		}
	}
}

func TestCheckoutReceiptKeepsShortIDs(t *testing.T) {
	if got := checkoutReceipt("abc"); got != "maktaba_abc" {
		t.Errorf("expected maktaba_abc, got %q", got)
	}
}
