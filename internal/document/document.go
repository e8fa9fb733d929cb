// Package document fills the handover document template. Templates are opaque
// markup; only {{placeholder}} tokens are touched.
package document

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-warehouse/internal/model"
)

const (
	Recipient      = "recipient"
	Address        = "address"
	Date           = "date"
	TransactionID  = "transaction_id"
	ItemsTable     = "items_table"
	TotalQuantity  = "total_quantity"
	CompanyName    = "company_name"
	CompanyAddress = "company_address"
	CompanyPhone   = "company_phone"
	CompanyEmail   = "company_email"
	LogoURL        = "logo_url"
	AdminName      = "admin_name"
	AdminTitle     = "admin_title"
	WarehouseName  = "warehouse_name"
)

const DateLayout = "2 January 2006"

// UnknownProduct is shown for items whose product has been deleted when
// HandoverData carries no localized label.
const UnknownProduct = "Unknown product"

var placeholder = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

const DefaultHandoverTemplate = `<div class="letterhead">
  {{logo_url}}
  <h2>{{company_name}}</h2>
  <p>{{company_address}}<br>{{company_phone}} {{company_email}}</p>
</div>
<h3>Handover Receipt</h3>
<p>No: {{transaction_id}}<br>Date: {{date}}</p>
<p>Recipient: {{recipient}}<br>Address: {{address}}</p>
{{items_table}}
<p>Total quantity: {{total_quantity}}</p>
<table class="signatures">
  <tr><td>Received by</td><td>Handed over by</td></tr>
  <tr><td><br><br>{{recipient}}</td><td><br><br>{{admin_name}}<br>{{admin_title}}, {{warehouse_name}}</td></tr>
</table>`

// Render replaces every known placeholder in tmpl with its value. Values are
// inserted verbatim, so callers escape them first. Unknown placeholders stay
// as written.
func Render(tmpl string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(tok string) string {
		key := placeholder.FindStringSubmatch(tok)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return tok
	})
}

type HandoverData struct {
	Transaction model.OutboundTransaction
	Products    map[string]model.Product
	Settings    model.AppSettings
	// UnknownLabel names items whose product is gone. Empty means UnknownProduct.
	UnknownLabel string
}

// RenderHandover renders the configured handover template, or the default
// template when none is configured.
func RenderHandover(d HandoverData) string {
	tmpl := d.Settings.HandoverTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultHandoverTemplate
	}
	return Render(tmpl, HandoverValues(d))
}

// HandoverValues builds the HTML-escaped placeholder values for a transaction.
func HandoverValues(d HandoverData) map[string]string {
	t := d.Transaction
	s := d.Settings
	esc := html.EscapeString

	logo := ""
	if s.Branding.LogoURL != "" {
		logo = fmt.Sprintf(`<img src="%s" alt="logo">`, esc(s.Branding.LogoURL))
	}

	return map[string]string{
		Recipient:      esc(t.Recipient),
		Address:        esc(t.Address),
		Date:           esc(t.Date.Format(DateLayout)),
		TransactionID:  esc(t.ID),
		ItemsTable:     itemsTable(t.Items, d.Products, d.UnknownLabel),
		TotalQuantity:  strconv.Itoa(t.TotalQuantity()),
		CompanyName:    esc(s.Branding.CompanyName),
		CompanyAddress: esc(s.Branding.Address),
		CompanyPhone:   esc(s.Branding.Phone),
		CompanyEmail:   esc(s.Branding.Email),
		LogoURL:        logo,
		AdminName:      esc(s.Admin.Name),
		AdminTitle:     esc(s.Admin.Title),
		WarehouseName:  esc(s.WarehouseName),
	}
}

func itemsTable(items []model.OutboundItem, products map[string]model.Product, unknown string) string {
	if unknown == "" {
		unknown = UnknownProduct
	}
	var b strings.Builder
	b.WriteString(`<table class="items"><thead><tr><th>No</th><th>Code</th><th>Name</th><th>Unit</th><th>Quantity</th></tr></thead><tbody>`)
	for i, it := range items {
		code, name, unit := "-", unknown, "-"
		if p, ok := products[it.ProductID]; ok {
			code, name, unit = p.Code, p.Name, p.Unit
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
			i+1, html.EscapeString(code), html.EscapeString(name), html.EscapeString(unit), it.Quantity)
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
