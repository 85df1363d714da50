package admin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"relatrix.app/crmserver/internal/backup"
	"relatrix.app/crmserver/internal/customer"
	adminhttp "relatrix.app/crmserver/internal/http/admin"
	"relatrix.app/crmserver/internal/sale"
	"relatrix.app/crmserver/internal/testutil"
	"relatrix.app/crmserver/internal/user"
)

func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()
	db := testutil.NewTestDB(t)

	svc := adminhttp.NewService(
		customer.NewService(db),
		sale.NewService(db),
		user.NewService(db),
		backup.NewService(db, "unused"),
	)

	e := echo.New()
	adminhttp.RegisterRoutes(e.Group(""), adminhttp.NewHandler(svc))
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCustomerEndpoints(t *testing.T) {
	e := newTestAPI(t)

	body := `{
		"customerId": "C-100",
		"name": "Asha Verma",
		"email": "asha@example.com",
		"gender": "Female",
		"company": "Acme Steel",
		"joinedDate": "2024-01-15"
	}`

	rec := do(e, http.MethodPost, "/customers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created customer.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.RowID == 0 || created.Name != "Asha Verma" {
		t.Errorf("unexpected create response: %+v", created)
	}

	rec = do(e, http.MethodGet, "/customers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var listed []customer.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(listed))
	}

	t.Run("validation failure returns 400", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/customers", `{"customerId": "C-2", "gender": "Female", "joinedDate": "2024-01-01"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for missing name, got %d", rec.Code)
		}
		var out map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if out["error"] == "" {
			t.Error("expected error message in body")
		}
	})

	t.Run("missing row returns 404", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/customers/9999", ""); rec.Code != http.StatusNotFound {
			t.Errorf("get: expected 404, got %d", rec.Code)
		}
		if rec := do(e, http.MethodDelete, "/customers/9999", ""); rec.Code != http.StatusNotFound {
			t.Errorf("delete: expected 404, got %d", rec.Code)
		}
	})

	t.Run("update ignores name", func(t *testing.T) {
		upd := `{
			"customerId": "C-100",
			"name": "Renamed",
			"email": "asha@example.com",
			"gender": "Female",
			"joinedDate": "2024-01-15"
		}`
		rec := do(e, http.MethodPut, "/customers/1", upd)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("update: expected 204, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = do(e, http.MethodGet, "/customers/1", "")
		var got customer.Customer
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Name != "Asha Verma" {
			t.Errorf("name should not change on update, got %q", got.Name)
		}
	})
}

func TestSaleEndpoints(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/sales", `{"customerId": "C1", "product": "Widget", "amount": 199.99, "saleDate": "2025-03-10"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodPost, "/sales", `{"customerId": "C1", "product": "Gadget", "amount": 50.01, "saleDate": "2025-03-12"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	t.Run("sales for customer include total", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/customers/by-ref/C1/sales", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var out struct {
			CustomerID string      `json:"customerId"`
			Sales      []sale.Sale `json:"sales"`
			Total      float64     `json:"total"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.CustomerID != "C1" || len(out.Sales) != 2 {
			t.Errorf("unexpected response: %+v", out)
		}
		if out.Total < 249.99 || out.Total > 250.01 {
			t.Errorf("expected total ~250.00, got %v", out.Total)
		}
	})

	t.Run("analytics by product", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/analytics/sales-by-product", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var totals map[string]float64
		if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(totals) != 2 {
			t.Errorf("expected 2 product groups, got %v", totals)
		}
	})

	t.Run("invalid sale date returns 400", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/sales", `{"customerId": "C1", "product": "Widget", "amount": 1, "saleDate": "soon"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReminderEndpoint(t *testing.T) {
	e := newTestAPI(t)

	mk := func(id, followUp string) {
		t.Helper()
		body := `{"customerId": "` + id + `", "name": "X", "gender": "Other", "joinedDate": "2024-01-01"`
		if followUp != "" {
			body += `, "followUpDate": "` + followUp + `"`
		}
		body += `}`
		if rec := do(e, http.MethodPost, "/customers", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d %s", id, rec.Code, rec.Body.String())
		}
	}

	mk("C-1", "")
	mk("C-2", "2026-09-05")
	mk("C-3", "2026-09-01")
	mk("C-4", "2027-01-01")

	rec := do(e, http.MethodGet, "/reminders?start=2026-08-30&end=2026-09-06", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []customer.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(out))
	}
	if out[0].CustomerID != "C-3" || out[1].CustomerID != "C-2" {
		t.Errorf("expected soonest first [C-3 C-2], got [%s %s]", out[0].CustomerID, out[1].CustomerID)
	}

	t.Run("bad window returns 400", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/reminders?start=nope&end=2026-09-06", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExportEndpoints(t *testing.T) {
	e := newTestAPI(t)

	body := `{"customerId": "C-1", "name": "Asha Verma", "email": "asha@example.com", "gender": "Female", "company": "Acme Steel", "joinedDate": "2024-01-15"}`
	if rec := do(e, http.MethodPost, "/customers", body); rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/sales", `{"customerId": "C-1", "product": "Widget", "amount": 199.99, "saleDate": "2025-03-10"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed sale: %d", rec.Code)
	}

	t.Run("customers csv", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/export/customers.csv", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("expected text/csv content type, got %q", ct)
		}
		if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "customers.csv") {
			t.Errorf("expected attachment disposition, got %q", cd)
		}
		if !strings.Contains(rec.Body.String(), "Asha Verma") {
			t.Error("expected customer row in CSV body")
		}
	})

	t.Run("sales report", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/export/sales.txt", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		out := rec.Body.String()
		if !strings.Contains(out, "(page 1 of 1)") {
			t.Error("expected page header in report")
		}
		if !strings.Contains(out, "C-1 | Widget | 199.99 | 2025-03-10") {
			t.Errorf("expected sale line in report, got:\n%s", out)
		}
	})
}
