package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/export"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// jsonError maps the application error taxonomy onto HTTP status codes.
// Every error is surfaced to the caller as-is; nothing is retried.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	case apperr.IsDuplicate(err):
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// Customers

func (h *Handler) GetCustomers(c echo.Context) error {
	out, err := h.svc.GetCustomers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	out, err := h.svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	out, err := h.svc.CreateCustomer(c.Request().Context(), &req)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateCustomer(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	if err := h.svc.UpdateCustomer(c.Request().Context(), id, &req); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteCustomer(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Reminders

// GetReminders lists customers due for a follow-up. Without query params
// the window is today through seven days out.
func (h *Handler) GetReminders(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" && end == "" {
		now := time.Now()
		start = now.Format("2006-01-02")
		end = now.AddDate(0, 0, 7).Format("2006-01-02")
	}

	out, err := h.svc.Reminders(c.Request().Context(), start, end)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Sales

func (h *Handler) GetSales(c echo.Context) error {
	out, err := h.svc.GetSales(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSale(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	out, err := h.svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateSale(c echo.Context) error {
	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	out, err := h.svc.CreateSale(c.Request().Context(), &req)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateSale(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	if err := h.svc.UpdateSale(c.Request().Context(), id, &req); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteSale(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteSale(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetCustomerSales(c echo.Context) error {
	out, err := h.svc.GetCustomerSales(c.Request().Context(), c.Param("customerId"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Analytics

func (h *Handler) GetSalesByProduct(c echo.Context) error {
	out, err := h.svc.SalesByProduct(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSalesByDate(c echo.Context) error {
	out, err := h.svc.SalesByDate(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Exports

func (h *Handler) ExportCustomersCSV(c echo.Context) error {
	customers, err := h.svc.GetCustomers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="customers.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.CustomersCSV(c.Response(), customers)
}

func (h *Handler) ExportSalesCSV(c echo.Context) error {
	sales, err := h.svc.GetSales(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.SalesCSV(c.Response(), sales)
}

func (h *Handler) ExportCustomersReport(c echo.Context) error {
	customers, err := h.svc.GetCustomers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	_, err = export.CustomerReport(customers).WriteTo(c.Response())
	return err
}

func (h *Handler) ExportSalesReport(c echo.Context) error {
	sales, err := h.svc.GetSales(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	_, err = export.SalesReport(sales).WriteTo(c.Response())
	return err
}

// Users / backup

func (h *Handler) GetUsers(c echo.Context) error {
	out, err := h.svc.GetUsers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) BackupDatabase(c echo.Context) error {
	out, err := h.svc.BackupDatabase(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
