package database

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDepartment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO Department`).
			WithArgs("Engineering", "icon-3").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.AddDepartment(&models.Department{DeptName: "Engineering", IconID: "icon-3"})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO Department`).
			WithArgs("Engineering", "icon-3").
			WillReturnError(fmt.Errorf("UNIQUE constraint failed: Department.DeptName"))

		err := repo.AddDepartment(&models.Department{DeptName: "Engineering", IconID: "icon-3"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add department")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrphanCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentRepository(newMockDatabase(db))

	t.Run("Has Members", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM Personnel`).
			WithArgs("Engineering").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.OrphanCount("Engineering")
		require.NoError(t, err)
		assert.Equal(t, 7, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Department", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM Personnel`).
			WithArgs("Archive").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.OrphanCount("Archive")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveDepartment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentRepository(newMockDatabase(db))

	t.Run("Reassigns Then Deletes", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE Personnel SET DeptName`).
			WithArgs(models.SentinelDepartment, "Engineering").
			WillReturnResult(sqlmock.NewResult(0, 7))
		mock.ExpectExec(`DELETE FROM Department`).
			WithArgs("Engineering").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RemoveDepartment("Engineering")
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reassign Fails Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE Personnel SET DeptName`).
			WithArgs(models.SentinelDepartment, "Engineering").
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		err := repo.RemoveDepartment("Engineering")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reassign personnel")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Fails Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE Personnel SET DeptName`).
			WithArgs(models.SentinelDepartment, "Engineering").
			WillReturnResult(sqlmock.NewResult(0, 7))
		mock.ExpectExec(`DELETE FROM Department`).
			WithArgs("Engineering").
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		err := repo.RemoveDepartment("Engineering")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to remove department")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListDepartments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT DeptName, IconID FROM Department ORDER BY DeptName`).
			WillReturnRows(sqlmock.NewRows([]string{"DeptName", "IconID"}).
				AddRow("Engineering", "icon-3").
				AddRow("No Department", "default"))

		departments, err := repo.ListDepartments()
		require.NoError(t, err)
		require.Len(t, departments, 2)
		assert.Equal(t, "Engineering", departments[0].DeptName)
		assert.Equal(t, models.SentinelDepartment, departments[1].DeptName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
