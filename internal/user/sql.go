package user

const getAllUsersSQL = `
SELECT row_id, name, email, password_hash
FROM users
ORDER BY email
`

const getUserByEmailSQL = `
SELECT row_id, name, email, password_hash
FROM users
WHERE email = ?
`

const createUserSQL = `
INSERT INTO users (
    name, email, password_hash
) VALUES (?, ?, ?)
`

const deleteUserSQL = `
DELETE FROM users
WHERE row_id = ?
`
