package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func quoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/shipping/quote", QuoteShipping)
	return r
}

func TestQuoteShipping(t *testing.T) {
	r := quoteRouter()

	cases := []struct {
		units string
		fee   float64
	}{
		{"1", 49},
		{"5", 49},
		{"6", 98},
		{"0", 0},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/shipping/quote?units="+tc.units, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("units=%s: status %d", tc.units, w.Code)
		}
		var body struct {
			Units       int     `json:"units"`
			ShippingFee float64 `json:"shipping_fee"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.ShippingFee != tc.fee {
			t.Errorf("units=%s: fee %v, want %v", tc.units, body.ShippingFee, tc.fee)
		}
	}
}

func TestQuoteShippingRejectsBadInput(t *testing.T) {
	r := quoteRouter()

	for _, q := range []string{"", "units=abc", "units=-1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/shipping/quote?"+q, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status %d, want 400", q, w.Code)
		}
	}
}
