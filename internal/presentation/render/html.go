package render

import (
	"bytes"
	"html/template"
)

const summaryHTMLTemplate = `{{if not .Empty}}<div class="invoice-summary">
  <h3>Invoice Summary</h3>
  <p class="muted">{{.Heading}} · <a href="{{.InvoiceLink}}" target="_blank">View printable invoice</a></p>
  <table>
    <thead>
      <tr><th>Code</th><th>Name</th><th>Unit</th><th>Qty</th><th>Tax %</th><th>Subtotal</th><th>Tax</th><th>Total</th></tr>
    </thead>
    <tbody>{{range .Lines}}
      <tr><td>{{.ProductCode}}</td><td>{{.ProductName}}</td><td>{{.UnitPrice}}</td><td>{{.Quantity}}</td><td>{{.TaxPercentage}}</td><td>{{.PurchasePrice}}</td><td>{{.TaxPayableForItem}}</td><td>{{.TotalPriceOfItem}}</td></tr>{{end}}
    </tbody>
  </table>
  <div class="totals-grid">{{range .Totals}}
    <div><strong>{{.Label}}</strong><br/>{{.Value}}</div>{{end}}
  </div>
  <div>
    {{template "denoms" .Payment}}
    {{template "denoms" .Change}}
  </div>
</div>{{end}}
{{define "denoms"}}<p><strong>{{.Label}}:</strong> {{if .None}}<span class="muted">None</span>{{else}}{{range $i, $t := .Tags}}{{if $i}} {{end}}<span class="tag">{{$t}}</span>{{end}}{{end}}</p>{{end}}`

const historyHTMLTemplate = `{{if .Empty}}<p class="muted">{{.Placeholder}}</p>{{else}}<ul>{{range .Entries}}
  <li>
    <div>
      <div><strong>{{.Title}}</strong></div>
      <div class="muted">{{.Timestamp}}</div>
    </div>
    <div>
      <span class="tag">{{.GrandTotal}}</span>
      <a href="{{.InvoiceLink}}" target="_blank">Open</a>
    </div>
  </li>{{end}}
</ul>{{end}}`

var (
	summaryHTML = template.Must(template.New("summary").Parse(summaryHTMLTemplate))
	historyHTML = template.Must(template.New("history").Parse(historyHTMLTemplate))
)

// SummaryHTML renders the invoice panel fragment. An empty view renders to
// an empty string.
func SummaryHTML(view SummaryView) (string, error) {
	var buf bytes.Buffer
	if err := summaryHTML.Execute(&buf, view); err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}

// HistoryHTML renders the purchase history fragment.
func HistoryHTML(view HistoryView) (string, error) {
	var buf bytes.Buffer
	if err := historyHTML.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
