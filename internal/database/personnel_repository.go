package database

import (
	"fmt"
	"strings"

	"github.com/officelayout/directory-backend/internal/models"
)

// PersonnelRepository handles employee database operations
type PersonnelRepository struct {
	db DB
}

// NewPersonnelRepository creates a new personnel repository
func NewPersonnelRepository(db DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// InsertEmployee creates the Personnel row and its Cubicle row in one
// transaction, so a failure on the second statement cannot strand the first.
// An already-known cubicle number keeps its existing position.
func (r *PersonnelRepository) InsertEmployee(p *models.Personnel, c *models.Cubicle) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO Personnel (EmployeeID, FirstName, LastName, DeptName, Email, Phone, CubicleNumber)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := tx.Exec(query, p.EmployeeID, p.FirstName, p.LastName, p.DeptName, p.Email, p.Phone, p.CubicleNumber); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	cubicleQuery := `
		INSERT OR IGNORE INTO Cubicle (CubicleNumber, Floor, Longitude, Latitude)
		VALUES (?, ?, ?, ?)
	`

	if _, err := tx.Exec(cubicleQuery, c.CubicleNumber, c.Floor, c.Longitude, c.Latitude); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert cubicle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit employee insert: %w", err)
	}

	return nil
}

// UpdateEmployee rewrites the editable fields of the Personnel row.
// Last write wins; there is no version check.
func (r *PersonnelRepository) UpdateEmployee(p *models.Personnel) error {
	query := `
		UPDATE Personnel
		SET DeptName = ?, CubicleNumber = ?, FirstName = ?, LastName = ?, Phone = ?, Email = ?
		WHERE EmployeeID = ?
	`

	_, err := r.db.Exec(query, p.DeptName, p.CubicleNumber, p.FirstName, p.LastName, p.Phone, p.Email, p.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// RemoveEmployee deletes the Personnel row for an employee ID. Removing an ID
// that is already gone affects zero rows and is not an error.
func (r *PersonnelRepository) RemoveEmployee(employeeID string) error {
	query := `DELETE FROM Personnel WHERE EmployeeID = ?`

	_, err := r.db.Exec(query, employeeID)
	if err != nil {
		return fmt.Errorf("failed to remove employee: %w", err)
	}

	return nil
}

// CountByEmployeeID returns how many Personnel rows carry the given ID.
// EmployeeID is the primary key, so anything above 1 is a data inconsistency
// the caller must surface.
func (r *PersonnelRepository) CountByEmployeeID(employeeID string) (int, error) {
	var count int

	query := `SELECT count(*) FROM Personnel WHERE EmployeeID = ?`

	err := r.db.QueryRow(query, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count personnel: %w", err)
	}

	return count, nil
}

// Search runs a free-text, multi-term OR query against the selected filter
// dimension. Terms arrive comma-split and pre-trimmed from the handler; each
// contributes an independent LIKE '%term%' match. Every term is bound as a
// parameter, never concatenated into the SQL.
func (r *PersonnelRepository) Search(terms []string, filter models.SearchFilter) ([]models.Personnel, error) {
	var clauses []string
	var args []interface{}

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		pattern := "%" + term + "%"

		switch filter {
		case models.FilterDepartment:
			clauses = append(clauses, "DeptName LIKE ?")
			args = append(args, pattern)
		case models.FilterEmail:
			clauses = append(clauses, "Email LIKE ?")
			args = append(args, pattern)
		case models.FilterPhone:
			clauses = append(clauses, "Phone LIKE ?")
			args = append(args, pattern)
		case models.FilterName:
			fallthrough
		default:
			clauses = append(clauses, "(FirstName LIKE ? OR LastName LIKE ?)")
			args = append(args, pattern, pattern)
		}
	}

	if len(clauses) == 0 {
		return nil, nil
	}

	query := `SELECT EmployeeID, CubicleNumber, FirstName, LastName, DeptName, Email, Phone FROM Personnel WHERE ` +
		strings.Join(clauses, " OR ")

	var results []models.Personnel
	if err := r.db.Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search personnel: %w", err)
	}

	return results, nil
}
