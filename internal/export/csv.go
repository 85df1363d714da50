// Package export renders record-store results into the two download
// formats the dashboard offers: CSV and a paginated plain-text report.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"relatrix.app/crmserver/internal/customer"
	"relatrix.app/crmserver/internal/sale"
)

// CustomersCSV writes all customers as UTF-8 CSV with a header row
// matching the table columns. A nil follow-up date becomes an empty cell.
func CustomersCSV(w io.Writer, customers []customer.Customer) error {
	cw := csv.NewWriter(w)

	header := []string{
		"row_id", "customer_id", "name", "email", "phone", "address",
		"city", "state", "gender", "company", "joined_date", "follow_up_date",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range customers {
		followUp := ""
		if c.FollowUpDate != nil {
			followUp = *c.FollowUpDate
		}
		record := []string{
			strconv.FormatInt(c.RowID, 10),
			c.CustomerID,
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.City,
			c.State,
			c.Gender,
			c.Company,
			c.JoinedDate,
			followUp,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SalesCSV writes all sales as UTF-8 CSV with a header row matching the
// table columns.
func SalesCSV(w io.Writer, sales []sale.Sale) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"row_id", "customer_id", "product", "amount", "sale_date"}); err != nil {
		return err
	}

	for _, s := range sales {
		record := []string{
			strconv.FormatInt(s.RowID, 10),
			s.CustomerID,
			s.Product,
			strconv.FormatFloat(s.Amount, 'f', 2, 64),
			s.SaleDate,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
