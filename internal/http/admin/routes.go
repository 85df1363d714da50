package admin

import "github.com/labstack/echo/v4"

func RegisterRoutes(g *echo.Group, h *Handler) {

	// Customers
	g.GET("/customers", h.GetCustomers)
	g.GET("/customers/:id", h.GetCustomer)
	g.POST("/customers", h.CreateCustomer)
	g.PUT("/customers/:id", h.UpdateCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)

	// Sales
	g.GET("/sales", h.GetSales)
	g.GET("/sales/:id", h.GetSale)
	g.POST("/sales", h.CreateSale)
	g.PUT("/sales/:id", h.UpdateSale)
	g.DELETE("/sales/:id", h.DeleteSale)

	// Sales for one customer (with summed total)
	g.GET("/customers/by-ref/:customerId/sales", h.GetCustomerSales)

	// Follow-up reminders
	g.GET("/reminders", h.GetReminders)

	// Analytics
	g.GET("/analytics/sales-by-product", h.GetSalesByProduct)
	g.GET("/analytics/sales-by-date", h.GetSalesByDate)

	// Exports
	g.GET("/export/customers.csv", h.ExportCustomersCSV)
	g.GET("/export/sales.csv", h.ExportSalesCSV)
	g.GET("/export/customers.txt", h.ExportCustomersReport)
	g.GET("/export/sales.txt", h.ExportSalesReport)

	// Users
	g.GET("/users", h.GetUsers)

	// Backup
	g.POST("/backup", h.BackupDatabase)
}
