package database

import (
	"fmt"

	"github.com/officelayout/directory-backend/internal/models"
)

// schema is the full table set. There is no migration tooling; the layout is
// small and stable, so tables are created on boot if absent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS User (
		Username   TEXT PRIMARY KEY,
		Password   TEXT NOT NULL,
		UserType   TEXT NOT NULL CHECK (UserType IN ('admin', 'humanr')),
		EmployeeID TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Icons (
		IconID   TEXT PRIMARY KEY,
		IconPath TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Department (
		DeptName TEXT PRIMARY KEY,
		IconID   TEXT NOT NULL REFERENCES Icons(IconID)
	)`,
	`CREATE TABLE IF NOT EXISTS Personnel (
		EmployeeID    TEXT PRIMARY KEY,
		FirstName     TEXT NOT NULL,
		LastName      TEXT NOT NULL,
		DeptName      TEXT NOT NULL REFERENCES Department(DeptName),
		Email         TEXT,
		Phone         TEXT,
		CubicleNumber TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Cubicle (
		CubicleNumber TEXT PRIMARY KEY,
		Floor         INTEGER NOT NULL,
		Longitude     REAL NOT NULL,
		Latitude      REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Peripherals (
		PeriphID  INTEGER PRIMARY KEY AUTOINCREMENT,
		Type      TEXT NOT NULL,
		Floor     INTEGER NOT NULL,
		IconID    TEXT NOT NULL REFERENCES Icons(IconID),
		Longitude REAL NOT NULL,
		Latitude  REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Utilities (
		UtilID    INTEGER PRIMARY KEY AUTOINCREMENT,
		Type      TEXT NOT NULL,
		Floor     INTEGER NOT NULL,
		IconID    TEXT NOT NULL REFERENCES Icons(IconID),
		Longitude REAL NOT NULL,
		Latitude  REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Pantry (
		PantryID  INTEGER PRIMARY KEY AUTOINCREMENT,
		Type      TEXT NOT NULL,
		Floor     INTEGER NOT NULL,
		IconID    TEXT NOT NULL REFERENCES Icons(IconID),
		Longitude REAL NOT NULL,
		Latitude  REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Room (
		RoomID    INTEGER PRIMARY KEY AUTOINCREMENT,
		Type      TEXT NOT NULL,
		Floor     INTEGER NOT NULL,
		IconID    TEXT NOT NULL REFERENCES Icons(IconID),
		Longitude REAL NOT NULL,
		Latitude  REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Emergency (
		EmergencyID INTEGER PRIMARY KEY AUTOINCREMENT,
		Type        TEXT NOT NULL,
		Floor       INTEGER NOT NULL,
		IconID      TEXT NOT NULL REFERENCES Icons(IconID),
		Longitude   REAL NOT NULL,
		Latitude    REAL NOT NULL
	)`,
}

// EnsureSchema creates missing tables and seeds the reference rows every
// installation needs: the sentinel department and its icon.
func EnsureSchema(db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if _, err := db.Exec(
		`INSERT OR IGNORE INTO Icons (IconID, IconPath) VALUES (?, ?)`,
		"default", "img/icons/default.png",
	); err != nil {
		return fmt.Errorf("failed to seed default icon: %w", err)
	}

	if _, err := db.Exec(
		`INSERT OR IGNORE INTO Department (DeptName, IconID) VALUES (?, ?)`,
		models.SentinelDepartment, "default",
	); err != nil {
		return fmt.Errorf("failed to seed sentinel department: %w", err)
	}

	return nil
}
