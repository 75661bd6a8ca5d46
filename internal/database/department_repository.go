package database

import (
	"fmt"

	"github.com/officelayout/directory-backend/internal/models"
)

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// AddDepartment inserts a new department.
func (r *DepartmentRepository) AddDepartment(dept *models.Department) error {
	query := `INSERT INTO Department (DeptName, IconID) VALUES (?, ?)`

	_, err := r.db.Exec(query, dept.DeptName, dept.IconID)
	if err != nil {
		return fmt.Errorf("failed to add department: %w", err)
	}

	return nil
}

// OrphanCount reports how many Personnel rows would lose their department if
// the named department were removed. This is the dry-run half of the removal
// choreography.
func (r *DepartmentRepository) OrphanCount(deptName string) (int, error) {
	var count int

	query := `SELECT count(*) FROM Personnel WHERE DeptName = ?`

	err := r.db.QueryRow(query, deptName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department personnel: %w", err)
	}

	return count, nil
}

// RemoveDepartment re-parents every Personnel row in the department to the
// sentinel department, then deletes the department row. Both statements run
// in one transaction; the reassignment must land before the delete or the
// personnel rows would violate their foreign key.
func (r *DepartmentRepository) RemoveDepartment(deptName string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	reassign := `UPDATE Personnel SET DeptName = ? WHERE DeptName = ?`
	if _, err := tx.Exec(reassign, models.SentinelDepartment, deptName); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reassign personnel: %w", err)
	}

	remove := `DELETE FROM Department WHERE DeptName = ?`
	if _, err := tx.Exec(remove, deptName); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove department: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit department removal: %w", err)
	}

	return nil
}

// ListDepartments returns all departments ordered by name.
func (r *DepartmentRepository) ListDepartments() ([]models.Department, error) {
	var departments []models.Department

	query := `SELECT DeptName, IconID FROM Department ORDER BY DeptName`

	if err := r.db.Select(&departments, query); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, nil
}
