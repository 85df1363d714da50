package customer

// Listing order is deliberately unspecified (backend natural order);
// callers must not rely on it.
const getAllCustomersSQL = `
SELECT row_id, customer_id, name, email, phone, address, city, state, gender, company, joined_date, follow_up_date
FROM customers
`

const getCustomerSQL = `
SELECT row_id, customer_id, name, email, phone, address, city, state, gender, company, joined_date, follow_up_date
FROM customers
WHERE row_id = ?
`

const createCustomerSQL = `
INSERT INTO customers (
    customer_id, name, email, phone, address, city, state, gender, company, joined_date, follow_up_date
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateCustomerSQL = `
UPDATE customers
SET customer_id = ?, name = ?, email = ?, phone = ?, address = ?, city = ?, state = ?, gender = ?, company = ?, joined_date = ?, follow_up_date = ?
WHERE row_id = ?
`

const deleteCustomerSQL = `
DELETE FROM customers
WHERE row_id = ?
`

const customerExistsSQL = `
SELECT EXISTS(
    SELECT 1 FROM customers WHERE row_id = ?
)
`

// Null follow-ups are excluded; the window is inclusive on both ends.
// This is the one intentionally ordered query in the store.
const followUpWindowSQL = `
SELECT row_id, customer_id, name, email, phone, address, city, state, gender, company, joined_date, follow_up_date
FROM customers
WHERE follow_up_date IS NOT NULL
  AND follow_up_date >= ?
  AND follow_up_date <= ?
ORDER BY follow_up_date ASC
`
