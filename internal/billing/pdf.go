package billing

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 30 * time.Second

var billTemplate = template.Must(template.New("bill").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 32px; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .meta { color: #555; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  th { background: #f2f2f2; }
  .num { text-align: right; }
  .summary { margin-top: 16px; width: 40%; margin-left: auto; }
  .summary td { border: none; padding: 3px 8px; }
  .summary .total { font-weight: bold; border-top: 1px solid #333; }
</style>
</head>
<body>
  <h1>Milk Bill</h1>
  <div class="meta">
    Invoice {{.InvoiceNo}} &middot; {{.InvoiceDate}} &middot; Period {{.BillPeriod}} &middot; Due {{.DueDate}}
  </div>
  <div>
    <strong>Bill To:</strong> {{.BillTo.Name}}<br>
    {{.BillTo.Address}}<br>
    {{.BillTo.ContactNumber}}
  </div>
  <table>
    <tr><th>Date</th><th>Description</th><th class="num">Liters</th><th class="num">Rate</th><th class="num">Total</th></tr>
    {{range .Lines}}
    <tr><td>{{.Date}}</td><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Total}}</td></tr>
    {{end}}
  </table>
  <table class="summary">
    <tr><td>Subtotal</td><td class="num">{{.Summary.Subtotal}}</td></tr>
    <tr><td>Tax</td><td class="num">{{.Summary.Tax}}</td></tr>
    <tr class="total"><td>Total</td><td class="num">{{.Summary.InvoiceTotal}}</td></tr>
  </table>
</body>
</html>`))

// RenderHTML produces the printable HTML for a bill.
func RenderHTML(bill *Bill) (string, error) {
	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, bill); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPDF prints the bill to PDF through headless Chrome. The no-sandbox
// flag is needed when the server runs as root in a container.
func RenderPDF(ctx context.Context, bill *Bill) ([]byte, error) {
	html, err := RenderHTML(bill)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27). // A4 inches
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
