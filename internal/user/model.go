package user

// User is an admin credential row. Passwords are stored as bcrypt hashes,
// never in clear text. Email is unique (case-insensitive).
type User struct {
	RowID        int64  `db:"row_id"`
	Name         string `db:"name" validate:"required"`
	Email        string `db:"email" validate:"required,email"`
	PasswordHash string `db:"password_hash" json:"-"`
}
