package customer

// Gender values accepted by the store.
var Genders = []string{"Male", "Female", "Other"}

// Customer is a CRM customer row. RowID is the stable storage key;
// CustomerID is the operator-supplied reference and is not unique.
// Dates are canonical YYYY-MM-DD strings; FollowUpDate is nil when no
// follow-up is scheduled.
type Customer struct {
	RowID        int64   `db:"row_id"`
	CustomerID   string  `db:"customer_id" validate:"required"`
	Name         string  `db:"name" validate:"required"`
	Email        string  `db:"email"`
	Phone        string  `db:"phone"`
	Address      string  `db:"address"`
	City         string  `db:"city"`
	State        string  `db:"state"`
	Gender       string  `db:"gender" validate:"required,oneof=Male Female Other"`
	Company      string  `db:"company"`
	JoinedDate   string  `db:"joined_date" validate:"required,datetime=2006-01-02"`
	FollowUpDate *string `db:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}
