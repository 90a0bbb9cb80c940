package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration and the business identity shown on receipts
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string

	BusinessName    string
	BusinessContact string
	BusinessAddress string
	LogoURL         string
	UPIID           string
	QRImageURL      string
}

// ReceiptItem is one purchased line on a receipt.
type ReceiptItem struct {
	Name     string
	Quantity int
	Price    float64
	Total    float64
}

// ReceiptData is the structured receipt content supplied by the checkout
// flow. Rendering it into HTML happens here, outside the settlement core.
type ReceiptData struct {
	SaleID         string
	CustomerName   string
	CustomerEmail  string
	Items          []ReceiptItem
	Subtotal       float64
	Discount       float64
	DeliveryCharge float64
	TotalPaid      float64
	Date           time.Time
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendReceipt renders the purchase receipt and emails it to the customer.
func (s *EmailService) SendReceipt(toEmail string, data ReceiptData) error {
	htmlContent, err := s.renderReceipt(data)
	if err != nil {
		return fmt.Errorf("failed to render receipt template: %w", err)
	}

	subject := fmt.Sprintf("Receipt from %s", s.config.BusinessName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderReceipt renders the purchase receipt email template
func (s *EmailService) renderReceipt(data ReceiptData) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	payload := struct {
		ReceiptData
		BusinessName    string
		BusinessContact string
		BusinessAddress string
		LogoURL         string
		UPIID           string
		QRImageURL      string
		DateText        string
	}{
		ReceiptData:     data,
		BusinessName:    s.config.BusinessName,
		BusinessContact: s.config.BusinessContact,
		BusinessAddress: s.config.BusinessAddress,
		LogoURL:         s.config.LogoURL,
		UPIID:           s.config.UPIID,
		QRImageURL:      s.config.QRImageURL,
		DateText:        data.Date.Format("January 02, 2006 at 3:04 PM"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// receiptTemplate is the HTML template for purchase receipts
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Receipt - {{.BusinessName}}</title>
</head>
<body style="margin: 0; padding: 20px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f5f5f5;">
    <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 16px rgba(0,0,0,0.08);">
        <div style="background: linear-gradient(135deg, #ECD0D4, #F5E6E8); padding: 30px; text-align: center;">
            {{if .LogoURL}}<img src="{{.LogoURL}}" alt="Logo" style="max-width: 120px; border-radius: 12px;">{{end}}
            <h1 style="color: #B85450; margin: 12px 0 0 0;">{{.BusinessName}}</h1>
        </div>
        <div style="padding: 30px;">
            <h2 style="color: #B85450; text-align: center;">Purchase Receipt</h2>
            <div style="background: #F5E6E8; padding: 18px; border-radius: 8px; margin-bottom: 24px;">
                <p style="margin: 4px 0;"><strong>Name:</strong> {{.CustomerName}}</p>
                <p style="margin: 4px 0;"><strong>Email:</strong> {{.CustomerEmail}}</p>
                <p style="margin: 4px 0;"><strong>Receipt ID:</strong> {{.SaleID}}</p>
                <p style="margin: 4px 0;"><strong>Date:</strong> {{.DateText}}</p>
            </div>
            <table style="width: 100%; border-collapse: collapse;">
                <thead>
                    <tr>
                        <th style="padding: 10px; text-align: left; background: #ECD0D4; color: #B85450;">Item</th>
                        <th style="padding: 10px; text-align: left; background: #ECD0D4; color: #B85450;">Qty</th>
                        <th style="padding: 10px; text-align: left; background: #ECD0D4; color: #B85450;">Price</th>
                        <th style="padding: 10px; text-align: left; background: #ECD0D4; color: #B85450;">Total</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Items}}
                    <tr>
                        <td style="padding: 10px; border-bottom: 1px solid #ECD0D4;">{{.Name}}</td>
                        <td style="padding: 10px; border-bottom: 1px solid #ECD0D4;">{{.Quantity}}</td>
                        <td style="padding: 10px; border-bottom: 1px solid #ECD0D4;">&#8377;{{printf "%.2f" .Price}}</td>
                        <td style="padding: 10px; border-bottom: 1px solid #ECD0D4;">&#8377;{{printf "%.2f" .Total}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            <div style="background: #F5E6E8; padding: 18px; border-radius: 8px; margin-top: 24px;">
                <p style="display: flex; justify-content: space-between; margin: 6px 0;"><span>Subtotal:</span> <span>&#8377;{{printf "%.2f" .Subtotal}}</span></p>
                <p style="display: flex; justify-content: space-between; margin: 6px 0;"><span>Discount:</span> <span>-&#8377;{{printf "%.2f" .Discount}}</span></p>
                <p style="display: flex; justify-content: space-between; margin: 6px 0;"><span>Delivery Charges:</span> <span>&#8377;{{printf "%.2f" .DeliveryCharge}}</span></p>
                <p style="display: flex; justify-content: space-between; margin: 12px 0 0 0; font-size: 1.2em; font-weight: bold; color: #B85450; border-top: 2px solid #ECD0D4; padding-top: 12px;"><span>Total Paid:</span> <span>&#8377;{{printf "%.2f" .TotalPaid}}</span></p>
            </div>
            {{if .UPIID}}
            <div style="text-align: center; margin-top: 30px;">
                <h3 style="color: #B85450;">Pay via UPI</h3>
                {{if .QRImageURL}}<img src="{{.QRImageURL}}" alt="UPI QR Code" style="max-width: 180px; border-radius: 12px;">{{end}}
                <p style="color: #B85450; font-weight: bold;">UPI ID: {{.UPIID}}</p>
                <p style="color: #B85450;">Please scan the QR code above or pay to the UPI ID, then reply to this email with a payment screenshot for confirmation.</p>
            </div>
            {{end}}
        </div>
        <div style="background: #ECD0D4; padding: 20px; text-align: center; color: #B85450;">
            <p style="font-weight: bold; margin: 4px 0;">Thank you for shopping with us!</p>
            <p style="margin: 4px 0;">{{.BusinessContact}}</p>
            <p style="margin: 4px 0;">{{.BusinessAddress}}</p>
        </div>
    </div>
</body>
</html>
`
