package models

import "database/sql"

// SentinelDepartment is the placeholder department assigned to personnel when
// their department is removed, so no Personnel row ever dangles.
const SentinelDepartment = "No Department"

// Personnel represents one employee in the directory. At least one of
// Email/Phone must be present; the other may be null.
type Personnel struct {
	EmployeeID    string         `json:"employee_id" db:"EmployeeID"`
	FirstName     string         `json:"first_name" db:"FirstName"`
	LastName      string         `json:"last_name" db:"LastName"`
	DeptName      string         `json:"dept_name" db:"DeptName"`
	Email         sql.NullString `json:"email" db:"Email"`
	Phone         sql.NullString `json:"phone" db:"Phone"`
	CubicleNumber string         `json:"cubicle_number" db:"CubicleNumber"`
}

// Cubicle represents the physical location an employee sits at. Coordinates
// are pixel-space positions over the floor-plan image, not geographic.
type Cubicle struct {
	CubicleNumber string  `json:"cubicle_number" db:"CubicleNumber"`
	Floor         int     `json:"floor" db:"Floor"`
	Longitude     float64 `json:"longitude" db:"Longitude"`
	Latitude      float64 `json:"latitude" db:"Latitude"`
}

// SearchFilter selects which dimension a personnel search matches against.
type SearchFilter string

const (
	FilterName       SearchFilter = "name"
	FilterDepartment SearchFilter = "department"
	FilterEmail      SearchFilter = "email"
	FilterPhone      SearchFilter = "phone"
)
