package domain

import "time"

// Department is the organizational unit a user belongs to. Departments
// back the assignable pools used by the assignment router.
type Department string

const (
	DepartmentMarketing  Department = "marketing"
	DepartmentProduction Department = "production"
	DepartmentRD         Department = "rd"
	DepartmentFinance    Department = "finance"
	DepartmentDealer     Department = "dealer"
)

// ActorRole returns the short role code recorded on activities.
func (d Department) ActorRole() string {
	switch d {
	case DepartmentDealer:
		return "DL"
	case DepartmentProduction:
		return "OP"
	case DepartmentRD:
		return "RD"
	case DepartmentFinance:
		return "GE"
	default:
		return "MS"
	}
}

// User is an operator, agent or dealer contact in the directory.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Department   Department
	DealerID     *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDealer reports whether the user acts on behalf of a dealer account.
func (u *User) IsDealer() bool {
	return u.Department == DepartmentDealer && u.DealerID != nil
}
