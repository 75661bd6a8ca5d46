package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	employeeColumns = []string{
		"EmployeeID", "CubicleNumber", "FirstName", "LastName", "DeptName",
		"Email", "Phone", "Latitude", "Longitude", "Floor", "IconID", "IconPath",
	}
	emergencyColumns   = []string{"EmergencyID", "IconID", "IconPath", "Type", "Longitude", "Latitude", "Floor"}
	pantryColumns      = []string{"PantryID", "IconID", "Longitude", "IconPath", "Latitude", "Floor"}
	peripheralsColumns = []string{"PeriphID", "Type", "Floor", "IconID", "IconPath", "Longitude", "Latitude"}
	roomColumns        = []string{"RoomID", "Type", "IconID", "IconPath", "Longitude", "Latitude", "Floor"}
	utilitiesColumns   = []string{"UtilID", "Type", "IconID", "IconPath", "Longitude", "Latitude", "Floor"}
	departmentColumns  = []string{"DeptName", "IconID", "IconPath"}
	iconColumns        = []string{"IconID", "IconPath"}
)

func TestWriteSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewSnapshotService(newMockDB(db))

	// Employee section: one occupant on floor 1, nobody on floor 2
	mock.ExpectQuery(`SELECT EmployeeID, Cubicle.CubicleNumber(.+)FROM Personnel natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow("E100", "C42", "Jane", "Doe", "Engineering",
				"jane@example.com", nil, 340.25, 120.5, int64(1), "icon-1", "icons/person.png"))
	mock.ExpectQuery(`SELECT EmployeeID, Cubicle.CubicleNumber(.+)FROM Personnel natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	mock.ExpectQuery(`FROM Emergency natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(emergencyColumns))
	mock.ExpectQuery(`FROM Emergency natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(emergencyColumns))

	mock.ExpectQuery(`FROM Pantry natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(pantryColumns))
	mock.ExpectQuery(`FROM Pantry natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(pantryColumns))

	// Peripherals: one printer on floor 2
	mock.ExpectQuery(`FROM Peripherals natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(peripheralsColumns))
	mock.ExpectQuery(`FROM Peripherals natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(peripheralsColumns).
			AddRow(int64(12), "Printer", int64(2), "icon-7", "icons/printer.png", 55.5, 66.0))

	mock.ExpectQuery(`FROM Room natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(roomColumns))
	mock.ExpectQuery(`FROM Room natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(roomColumns))

	mock.ExpectQuery(`FROM Utilities natural join`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(utilitiesColumns))
	mock.ExpectQuery(`FROM Utilities natural join`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(utilitiesColumns))

	mock.ExpectQuery(`FROM Department natural join Icons ORDER BY DeptName`).
		WillReturnRows(sqlmock.NewRows(departmentColumns).
			AddRow("Engineering", "icon-3", "icons/gear.png"))

	mock.ExpectQuery(`FROM Icons`).
		WillReturnRows(sqlmock.NewRows(iconColumns).
			AddRow("icon-1", "icons/person.png").
			AddRow("icon-3", "icons/gear.png"))

	var out strings.Builder
	err = svc.WriteSnapshot(&out)
	require.NoError(t, err)

	doc := out.String()

	assert.True(t, strings.HasPrefix(doc, "<Everything>"))
	assert.True(t, strings.HasSuffix(doc, "</Everything>"))

	// Every wrapper element appears, floor-split sections twice
	for _, name := range []string{
		"EmployeeFloor1", "EmployeeFloor2",
		"EmergencyFloor1", "EmergencyFloor2",
		"PantryFloor1", "PantryFloor2",
		"PeripheralsFloor1", "PeripheralsFloor2",
		"RoomFloor1", "RoomFloor2",
		"UtilitiesFloor1", "UtilitiesFloor2",
		"Department", "Icons",
	} {
		assert.Contains(t, doc, "<"+name)
	}

	// Attribute names come from the bare column, qualifier stripped
	assert.Contains(t, doc, `EmployeeID="E100"`)
	assert.Contains(t, doc, `CubicleNumber="C42"`)
	assert.Contains(t, doc, `DeptName="Engineering"`)
	assert.Contains(t, doc, `IconPath="icons/person.png"`)

	// Null values render as empty attributes, floats without exponent
	assert.Contains(t, doc, `Phone=""`)
	assert.Contains(t, doc, `Latitude="340.25"`)
	assert.Contains(t, doc, `Longitude="120.5"`)

	// Row elements are the wrapper name plus Row
	assert.Contains(t, doc, "<EmployeeFloor1Row")
	assert.Contains(t, doc, "<PeripheralsFloor2Row")
	assert.Contains(t, doc, `PeriphID="12"`)
	assert.Contains(t, doc, "<DepartmentRow")
	assert.Contains(t, doc, "<IconsRow")

	// Empty sections still emit their wrapper
	assert.Contains(t, doc, "<EmployeeFloor2></EmployeeFloor2>")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteSnapshotQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewSnapshotService(newMockDB(db))

	mock.ExpectQuery(`FROM Personnel natural join`).
		WithArgs(1).
		WillReturnError(assert.AnError)

	var out strings.Builder
	err = svc.WriteSnapshot(&out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query EmployeeFloor1")
}
