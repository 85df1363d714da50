package export_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"relatrix.app/crmserver/internal/customer"
	"relatrix.app/crmserver/internal/export"
	"relatrix.app/crmserver/internal/sale"
)

func strPtr(s string) *string { return &s }

func TestCustomersCSV(t *testing.T) {
	customers := []customer.Customer{
		{
			RowID: 1, CustomerID: "C-1001", Name: "Asha Verma",
			Email: "asha@example.com", Phone: "555-0101", Address: "12 Canal Road",
			City: "Pune", State: "MH", Gender: "Female", Company: "Acme Steel",
			JoinedDate: "2024-01-15",
		},
		{
			RowID: 2, CustomerID: "C-1002", Name: "Rahul Nair",
			Gender: "Male", JoinedDate: "2024-03-02",
			FollowUpDate: strPtr("2026-09-03"),
		},
	}

	var buf bytes.Buffer
	if err := export.CustomersCSV(&buf, customers); err != nil {
		t.Fatalf("customers csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	wantHeader := "row_id,customer_id,name,email,phone,address,city,state,gender,company,joined_date,follow_up_date"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header mismatch:\n got %s\nwant %s", got, wantHeader)
	}

	if records[1][1] != "C-1001" || records[1][2] != "Asha Verma" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[1][11] != "" {
		t.Errorf("nil follow-up should export as empty cell, got %q", records[1][11])
	}
	if records[2][11] != "2026-09-03" {
		t.Errorf("expected follow-up 2026-09-03, got %q", records[2][11])
	}
}

func TestSalesCSV(t *testing.T) {
	sales := []sale.Sale{
		{RowID: 1, CustomerID: "C-1001", Product: "Widget", Amount: 199.99, SaleDate: "2025-03-10"},
		{RowID: 2, CustomerID: "C-1002", Product: "Gadget", Amount: 50, SaleDate: "2025-03-12"},
	}

	var buf bytes.Buffer
	if err := export.SalesCSV(&buf, sales); err != nil {
		t.Fatalf("sales csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if got := strings.Join(records[0], ","); got != "row_id,customer_id,product,amount,sale_date" {
		t.Errorf("unexpected header: %s", got)
	}
	if records[1][3] != "199.99" {
		t.Errorf("expected amount 199.99, got %q", records[1][3])
	}
	if records[2][3] != "50.00" {
		t.Errorf("amounts always carry two decimals, got %q", records[2][3])
	}
}

func TestCustomerReportLines(t *testing.T) {
	r := export.CustomerReport([]customer.Customer{
		{CustomerID: "C-1", Name: "Asha Verma", Email: "asha@example.com", Gender: "Female", Company: "Acme Steel"},
	})

	if len(r.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(r.Lines))
	}
	want := "C-1 | Asha Verma | asha@example.com | Female | Acme Steel"
	if r.Lines[0] != want {
		t.Errorf("line mismatch:\n got %s\nwant %s", r.Lines[0], want)
	}
}

func TestSalesReportLines(t *testing.T) {
	r := export.SalesReport([]sale.Sale{
		{CustomerID: "C-1", Product: "CRM Pro License", Amount: 1499, SaleDate: "2024-07-01"},
	})

	if len(r.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(r.Lines))
	}
	want := "C-1 | CRM Pro License | 1,499.00 | 2024-07-01"
	if r.Lines[0] != want {
		t.Errorf("line mismatch:\n got %s\nwant %s", r.Lines[0], want)
	}
}

func TestReportPagination(t *testing.T) {
	var customers []customer.Customer
	for i := 0; i < 41; i++ {
		customers = append(customers, customer.Customer{
			CustomerID: fmt.Sprintf("C-%d", i),
			Name:       "Row",
			Gender:     "Other",
		})
	}

	r := export.CustomerReport(customers)
	if got := r.PageCount(); got != 2 {
		t.Fatalf("expected 2 pages for 41 rows, got %d", got)
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "(page 1 of 2)") || !strings.Contains(out, "(page 2 of 2)") {
		t.Errorf("expected both page headers in output")
	}
	if strings.Count(out, "C-") != 41 {
		t.Errorf("expected 41 record lines, got %d", strings.Count(out, "C-"))
	}
}

func TestEmptyReportStillRendersOnePage(t *testing.T) {
	r := export.CustomerReport(nil)
	if got := r.PageCount(); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "(page 1 of 1)") {
		t.Errorf("expected page header in empty report")
	}
}
