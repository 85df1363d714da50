package sale

// As with customers, listing order is backend natural order.
const getAllSalesSQL = `
SELECT row_id, customer_id, product, amount, sale_date
FROM sales
`

const getSaleSQL = `
SELECT row_id, customer_id, product, amount, sale_date
FROM sales
WHERE row_id = ?
`

const createSaleSQL = `
INSERT INTO sales (
    customer_id, product, amount, sale_date
) VALUES (?, ?, ?, ?)
`

const updateSaleSQL = `
UPDATE sales
SET customer_id = ?, product = ?, amount = ?, sale_date = ?
WHERE row_id = ?
`

const deleteSaleSQL = `
DELETE FROM sales
WHERE row_id = ?
`

const saleExistsSQL = `
SELECT EXISTS(
    SELECT 1 FROM sales WHERE row_id = ?
)
`

const getSalesForCustomerSQL = `
SELECT row_id, customer_id, product, amount, sale_date
FROM sales
WHERE customer_id = ?
`
