package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"maktaba_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func senderAddress() string {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@maktabapublishers.in"
	}
	return from
}

// SendEmail delivers an HTML email, optionally with a PDF attachment.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(senderAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("invoice.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML builds the order confirmation body.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		name := item.Name
		if item.Language != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Language)
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, name, item.Quantity, item.Price.Float64(), item.Price.Float64()*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order is confirmed</h2>
		<p>As-salamu alaykum %s,</p>
		<p>Thank you for your order <strong>%s</strong>. We will let you know as soon as it ships.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Title</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Shipping:</td>
					<td style="padding: 10px;">₹%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			JazakAllahu khairan,<br>
			<strong>The Maktaba team</strong>
		</p>
	</div>
</body>
</html>`, order.ContactName, order.OrderNumber, itemsHTML, order.ShippingFee.Float64(), order.Total.Float64())
}

// GeneratePasswordResetHTML builds the reset email body.
func GeneratePasswordResetHTML(resetURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Password reset</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Reset your password</h2>
		<p>We received a request to reset your Maktaba password. The link below is valid for 30 minutes.</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #1a7f5a; color: white; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Choose a new password</a>
		</p>
		<p style="color: #777;">If you did not ask for this, you can safely ignore this email.</p>
	</div>
</body>
</html>`, resetURL)
}
