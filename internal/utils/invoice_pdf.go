package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"maktaba_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateTrackingQR encodes the public order-tracking URL as a base64 PNG
// ready for an <img src="...">.
func GenerateTrackingQR(orderNumber string) (string, error) {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	trackURL := fmt.Sprintf("%s/orders/track?number=%s", base, url.QueryEscape(orderNumber))

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF renders the invoice page in headless Chrome and prints
// it to PDF. The frontend invoice route renders from the order id alone.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	qr, err := GenerateTrackingQR(order.OrderNumber)
	if err != nil {
		return nil, err
	}

	base := os.Getenv("FRONTEND_INVOICE_URL")
	if base == "" {
		base = "http://localhost:5173/invoice"
	}

	q := url.Values{}
	q.Set("id", order.ID.String())
	q.Set("qr", qr)
	fullURL := fmt.Sprintf("%s?%s", base, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
