package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/mbahwiryo/storefront/internal/model"
)

// StoreInfo is the shop identity printed in every email.
type StoreInfo struct {
	Brand           string
	SupportWhatsApp string
	SupportEmail    string
	BusinessHours   string
	Year            int
}

type itemView struct {
	Name      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type orderView struct {
	Reference     string
	Customer      model.Customer
	Items         []itemView
	ShippingLabel string
	PaymentLabel  string
	Subtotal      string
	ShippingCost  string
	Total         string

	CustomerWhatsApp string
	CustomerQR       template.URL
	SupportWhatsApp  string
	Store            StoreInfo
}

func newOrderView(o *model.Order, store StoreInfo) orderView {
	items := make([]itemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: model.FormatRupiah(item.UnitPrice),
			Subtotal:  model.FormatRupiah(item.Subtotal()),
		})
	}

	return orderView{
		Reference:        o.Reference,
		Customer:         o.Customer,
		Items:            items,
		ShippingLabel:    o.Shipping.Label(),
		PaymentLabel:     o.PaymentLabel(),
		Subtotal:         model.FormatRupiah(o.ItemsSubtotal()),
		ShippingCost:     model.FormatRupiah(o.Shipping.Cost),
		Total:            model.FormatRupiah(o.GrandTotal()),
		CustomerWhatsApp: model.WhatsAppLink(o.Customer.Phone),
		SupportWhatsApp:  model.WhatsAppLink(store.SupportWhatsApp),
		Store:            store,
	}
}

// qrDataURI encodes content as a PNG QR code data URI, or "" when it cannot.
func qrDataURI(content string) template.URL {
	if content == "" {
		return ""
	}
	png, err := qrcode.Encode(content, qrcode.Medium, 200)
	if err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

var (
	customerTmpl = template.Must(template.New("customer").Parse(customerEmailHTML))
	adminTmpl    = template.Must(template.New("admin").Parse(adminEmailHTML))
)

// CustomerEmailHTML renders the order confirmation sent to the customer.
// Every value taken from the order is HTML-escaped.
func CustomerEmailHTML(o *model.Order, store StoreInfo) (string, error) {
	var buf bytes.Buffer
	if err := customerTmpl.Execute(&buf, newOrderView(o, store)); err != nil {
		return "", fmt.Errorf("render customer email: %w", err)
	}
	return buf.String(), nil
}

// AdminEmailHTML renders the new-order alert sent to the operations inbox,
// with WhatsApp and mailto links for the customer.
func AdminEmailHTML(o *model.Order, store StoreInfo) (string, error) {
	view := newOrderView(o, store)
	view.CustomerQR = qrDataURI(view.CustomerWhatsApp)

	var buf bytes.Buffer
	if err := adminTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render admin email: %w", err)
	}
	return buf.String(), nil
}

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// CustomerSubject returns the subject line of the customer confirmation.
func CustomerSubject(o *model.Order, store StoreInfo) string {
	return headerSanitizer.Replace(fmt.Sprintf("Konfirmasi Pesanan %s - %s", o.Reference, store.Brand))
}

// AdminSubject returns the subject line of the operations alert.
func AdminSubject(o *model.Order) string {
	return headerSanitizer.Replace(fmt.Sprintf("🚨 PESANAN BARU: %s - %s", o.Reference, o.Customer.Name))
}

const customerEmailHTML = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Konfirmasi Pesanan - {{.Store.Brand}}</title>
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
  .container { background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
  .header { background: linear-gradient(135deg, #f97316 0%, #eab308 100%); color: white; padding: 30px 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 28px; }
  .content { padding: 30px 20px; }
  .order-number { background: #fef3c7; border: 2px solid #f59e0b; border-radius: 8px; padding: 15px; text-align: center; margin-bottom: 25px; }
  .order-number h2 { margin: 0; color: #92400e; font-size: 20px; }
  .section { margin-bottom: 25px; padding-bottom: 20px; border-bottom: 1px solid #e5e7eb; }
  .section h3 { color: #92400e; margin-bottom: 15px; font-size: 18px; }
  .item { padding: 12px 0; border-bottom: 1px solid #f3f4f6; }
  .item-name { font-weight: 600; color: #374151; }
  .item-details { color: #6b7280; font-size: 14px; }
  .item-total { font-weight: 600; color: #92400e; }
  .total-section { background: #fef3c7; border-radius: 8px; padding: 20px; margin-top: 20px; }
  .total-row { margin-bottom: 8px; }
  .total-row.final { border-top: 2px solid #f59e0b; padding-top: 12px; font-size: 18px; font-weight: bold; color: #92400e; }
  .next-steps { background: #ecfdf5; border: 1px solid #10b981; border-radius: 8px; padding: 20px; margin-top: 25px; }
  .contact-info { background: #f3f4f6; border-radius: 8px; padding: 20px; margin-top: 25px; text-align: center; }
  .whatsapp-btn { display: inline-block; background: #10b981; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 600; }
  .footer { background: #374151; color: white; padding: 20px; text-align: center; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>🎉 Pesanan Berhasil Diterima!</h1>
    <p>Terima kasih telah mempercayai {{.Store.Brand}}</p>
  </div>
  <div class="content">
    <div class="order-number">
      <h2>Nomor Pesanan: <span class="order-ref">{{.Reference}}</span></h2>
    </div>

    <div class="section">
      <h3>📋 Detail Pesanan</h3>
      {{- range .Items}}
      <div class="item">
        <div class="item-name">{{.Name}}</div>
        <div class="item-details">Qty: {{.Quantity}} × {{.UnitPrice}}</div>
        <div class="item-total">{{.Subtotal}}</div>
      </div>
      {{- end}}
    </div>

    <div class="section shipping-info">
      <h3>📍 Informasi Pengiriman</h3>
      <p><strong>Nama:</strong> {{.Customer.Name}}</p>
      <p><strong>Telepon:</strong> {{.Customer.Phone}}</p>
      <p><strong>Alamat:</strong> {{.Customer.Address}}, {{.Customer.City}}{{with .Customer.Province}}, {{.}}{{end}}{{with .Customer.PostalCode}} {{.}}{{end}}</p>
      <p><strong>Metode Pengiriman:</strong> {{.ShippingLabel}}</p>
      {{- with .Customer.Notes}}
      <p class="notes"><strong>Catatan:</strong> {{.}}</p>
      {{- end}}
    </div>

    <div class="section">
      <h3>💳 Metode Pembayaran</h3>
      <p class="payment">{{.PaymentLabel}}</p>
    </div>

    <div class="total-section">
      <div class="total-row subtotal"><span>Subtotal:</span> <span>{{.Subtotal}}</span></div>
      <div class="total-row shipping"><span>Ongkos Kirim:</span> <span>{{.ShippingCost}}</span></div>
      <div class="total-row final"><span>Total Pembayaran:</span> <span>{{.Total}}</span></div>
    </div>

    <div class="next-steps">
      <h4>🚀 Langkah Selanjutnya:</h4>
      <ol>
        <li>Tim kami akan menghubungi Anda via WhatsApp dalam 1-2 jam untuk konfirmasi</li>
        <li>Lakukan pembayaran sesuai instruksi yang akan diberikan</li>
        <li>Pesanan akan diproses setelah pembayaran dikonfirmasi</li>
        <li>Produk akan dikirim sesuai metode pengiriman yang dipilih</li>
        <li>Anda akan mendapat nomor resi untuk tracking pengiriman</li>
      </ol>
    </div>

    <div class="contact-info">
      <h4>📞 Butuh Bantuan?</h4>
      <p>Hubungi customer service kami:</p>
      {{- if .SupportWhatsApp}}
      <a href="{{.SupportWhatsApp}}" class="whatsapp-btn">💬 Chat WhatsApp</a>
      {{- end}}
      <p style="margin-top: 15px; font-size: 14px;">
        {{- with .Store.SupportEmail}}Email: {{.}}<br>{{end}}
        {{- with .Store.BusinessHours}}Jam Operasional: {{.}}{{end}}
      </p>
    </div>
  </div>
  <div class="footer">
    <p>&copy; {{.Store.Year}} {{.Store.Brand}}. Semua Hak Dilindungi.</p>
  </div>
</div>
</body>
</html>`

const adminEmailHTML = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Pesanan Baru - {{.Reference}}</title>
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
  .container { background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
  .header { background: linear-gradient(135deg, #dc2626 0%, #ea580c 100%); color: white; padding: 20px; text-align: center; }
  .content { padding: 20px; }
  .alert { background: #fef2f2; border: 1px solid #fecaca; border-radius: 6px; padding: 15px; margin-bottom: 20px; color: #991b1b; font-weight: 600; }
  .section { margin-bottom: 20px; padding-bottom: 15px; border-bottom: 1px solid #e5e7eb; }
  .section h3 { color: #dc2626; margin-bottom: 10px; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; }
  th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #e5e7eb; }
  th { background: #f9fafb; font-weight: 600; color: #374151; }
  .total { background: #fef3c7; padding: 15px; border-radius: 6px; margin-top: 15px; font-weight: 600; font-size: 18px; color: #92400e; text-align: center; }
  .action-buttons { text-align: center; margin-top: 20px; }
  .btn { display: inline-block; padding: 10px 20px; margin: 5px; text-decoration: none; border-radius: 6px; font-weight: 600; color: white; }
  .btn-whatsapp { background: #10b981; }
  .btn-email { background: #3b82f6; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>🚨 PESANAN BARU MASUK!</h1>
    <p>Nomor Pesanan: <span class="order-ref">{{.Reference}}</span></p>
  </div>
  <div class="content">
    <div class="alert">⚡ SEGERA TINDAK LANJUTI: Hubungi pelanggan dalam 1-2 jam!</div>

    <div class="section customer-info">
      <h3>👤 Data Pelanggan</h3>
      <p><strong>Nama:</strong> {{.Customer.Name}}</p>
      <p><strong>Telepon:</strong> {{.Customer.Phone}}</p>
      <p><strong>Email:</strong> {{.Customer.Email}}</p>
      <p><strong>Alamat:</strong> {{.Customer.Address}}, {{.Customer.City}}{{with .Customer.Province}}, {{.}}{{end}}{{with .Customer.PostalCode}} {{.}}{{end}}</p>
      {{- with .Customer.Notes}}
      <p class="notes"><strong>Catatan:</strong> {{.}}</p>
      {{- end}}
    </div>

    <div class="section">
      <h3>📦 Detail Pesanan</h3>
      <table>
        <thead>
          <tr><th>Produk</th><th>Qty</th><th>Harga</th><th>Total</th></tr>
        </thead>
        <tbody>
          {{- range .Items}}
          <tr class="item"><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td class="item-total">{{.Subtotal}}</td></tr>
          {{- end}}
        </tbody>
      </table>
      <div class="total">
        Total Pesanan: <span class="grand-total">{{.Total}}</span>
        <br><small>Termasuk ongkir {{.ShippingLabel}}: {{.ShippingCost}}</small>
      </div>
    </div>

    <div class="section">
      <h3>🚚 Pengiriman &amp; Pembayaran</h3>
      <p><strong>Metode Pengiriman:</strong> {{.ShippingLabel}}</p>
      <p><strong>Metode Pembayaran:</strong> {{.PaymentLabel}}</p>
    </div>

    <div class="action-buttons">
      {{- if .CustomerWhatsApp}}
      <a href="{{.CustomerWhatsApp}}" class="btn btn-whatsapp">💬 Hubungi via WhatsApp</a>
      {{- end}}
      <a href="mailto:{{.Customer.Email}}" class="btn btn-email">📧 Kirim Email</a>
      {{- if .CustomerQR}}
      <p><img class="whatsapp-qr" src="{{.CustomerQR}}" alt="QR WhatsApp pelanggan" width="160" height="160"></p>
      {{- end}}
    </div>
  </div>
</div>
</body>
</html>`
