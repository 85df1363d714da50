package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"relatrix.app/crmserver/internal/customer"
	"relatrix.app/crmserver/internal/sale"
)

// linesPerPage is how many record lines fit on one report page before a
// new page header is emitted.
const linesPerPage = 40

var amountPrinter = message.NewPrinter(language.English)

// Report is a paginated plain-text listing, one line per row.
type Report struct {
	Title string
	Lines []string
}

// CustomerReport formats customers one per line:
// {customer_id} | {name} | {email} | {gender} | {company}
func CustomerReport(customers []customer.Customer) *Report {
	r := &Report{Title: "Relatrix Customer Report"}
	for _, c := range customers {
		r.Lines = append(r.Lines, fmt.Sprintf("%s | %s | %s | %s | %s",
			c.CustomerID, c.Name, c.Email, c.Gender, c.Company))
	}
	return r
}

// SalesReport formats sales one per line:
// {customer_id} | {product} | {amount} | {sale_date}
func SalesReport(sales []sale.Sale) *Report {
	r := &Report{Title: "Relatrix Sales Report"}
	for _, s := range sales {
		amount := amountPrinter.Sprintf("%.2f", s.Amount)
		r.Lines = append(r.Lines, fmt.Sprintf("%s | %s | %s | %s",
			s.CustomerID, s.Product, amount, s.SaleDate))
	}
	return r
}

// PageCount returns how many pages the report spans. An empty report still
// renders one page (with its header and no rows).
func (r *Report) PageCount() int {
	if len(r.Lines) == 0 {
		return 1
	}
	return (len(r.Lines) + linesPerPage - 1) / linesPerPage
}

// WriteTo renders the report, starting a new page header whenever the
// current page runs out of lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	pages := r.PageCount()

	for page := 0; page < pages; page++ {
		start := page * linesPerPage
		end := start + linesPerPage
		if end > len(r.Lines) {
			end = len(r.Lines)
		}

		header := fmt.Sprintf("%s (page %d of %d)\n%s\n",
			r.Title, page+1, pages, strings.Repeat("-", len(r.Title)+20))
		n, err := io.WriteString(w, header)
		written += int64(n)
		if err != nil {
			return written, err
		}

		for _, line := range r.Lines[start:end] {
			n, err := io.WriteString(w, line+"\n")
			written += int64(n)
			if err != nil {
				return written, err
			}
		}

		if page < pages-1 {
			n, err := io.WriteString(w, "\n")
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
