package database

import (
	"errors"
	"fmt"

	"github.com/officelayout/directory-backend/internal/models"
)

// ErrUnknownObjectKind indicates a request named a point-object table that
// does not exist.
var ErrUnknownObjectKind = errors.New("unknown map object kind")

// objectTable binds an object kind to its table and primary-key column. SQL
// is only ever built from this fixed set, never from request input.
type objectTable struct {
	table    string
	idColumn string
}

var objectTables = map[models.ObjectKind]objectTable{
	models.KindPeripheral: {table: "Peripherals", idColumn: "PeriphID"},
	models.KindUtility:    {table: "Utilities", idColumn: "UtilID"},
	models.KindPantry:     {table: "Pantry", idColumn: "PantryID"},
	models.KindRoom:       {table: "Room", idColumn: "RoomID"},
	models.KindEmergency:  {table: "Emergency", idColumn: "EmergencyID"},
}

// MapObjectRepository handles the point-object tables (peripherals,
// utilities, pantries, rooms, emergency equipment). The five tables are
// structurally identical, so one repository serves them all.
type MapObjectRepository struct {
	db DB
}

// NewMapObjectRepository creates a new map object repository
func NewMapObjectRepository(db DB) *MapObjectRepository {
	return &MapObjectRepository{db: db}
}

// Insert adds a new point object and returns its generated ID.
func (r *MapObjectRepository) Insert(obj *models.MapObject) (int64, error) {
	t, ok := objectTables[obj.Kind]
	if !ok {
		return 0, ErrUnknownObjectKind
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (Type, Floor, IconID, Longitude, Latitude) VALUES (?, ?, ?, ?, ?)`,
		t.table,
	)

	result, err := r.db.Exec(query, obj.Type, obj.Floor, obj.IconID, obj.Longitude, obj.Latitude)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", t.table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// UpdateTypeIcon changes the subtype and icon of a point object.
func (r *MapObjectRepository) UpdateTypeIcon(kind models.ObjectKind, id int64, objType, iconID string) error {
	t, ok := objectTables[kind]
	if !ok {
		return ErrUnknownObjectKind
	}

	query := fmt.Sprintf(`UPDATE %s SET Type = ?, IconID = ? WHERE %s = ?`, t.table, t.idColumn)

	if _, err := r.db.Exec(query, objType, iconID, id); err != nil {
		return fmt.Errorf("failed to update %s: %w", t.table, err)
	}

	return nil
}

// Move changes the position of a point object on its floor plan.
func (r *MapObjectRepository) Move(kind models.ObjectKind, id int64, longitude, latitude float64) error {
	t, ok := objectTables[kind]
	if !ok {
		return ErrUnknownObjectKind
	}

	query := fmt.Sprintf(`UPDATE %s SET Latitude = ?, Longitude = ? WHERE %s = ?`, t.table, t.idColumn)

	if _, err := r.db.Exec(query, latitude, longitude, id); err != nil {
		return fmt.Errorf("failed to move %s: %w", t.table, err)
	}

	return nil
}

// Remove deletes a point object by ID. Removing an ID that is already gone
// affects zero rows and is not an error.
func (r *MapObjectRepository) Remove(kind models.ObjectKind, id int64) error {
	t, ok := objectTables[kind]
	if !ok {
		return ErrUnknownObjectKind
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.table, t.idColumn)

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to remove %s: %w", t.table, err)
	}

	return nil
}
