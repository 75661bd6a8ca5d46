package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/officelayout/directory-backend/internal/models"
)

// ErrUserNotFound indicates no account exists for the given username.
var ErrUserNotFound = errors.New("user account does not exist")

// UserRepository handles login-account database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername retrieves an account by its username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User

	query := `
		SELECT Username, Password, UserType, EmployeeID
		FROM User
		WHERE Username = ?
	`

	err := r.db.Get(&user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetRole returns the stored role for a username. The authorization gate
// calls this on every gated request rather than trusting the session.
func (r *UserRepository) GetRole(username string) (models.Role, error) {
	var role models.Role

	query := `SELECT UserType FROM User WHERE Username = ?`

	err := r.db.QueryRow(query, username).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role, nil
}

// CreateAccount inserts a new login account. The password must already be
// hashed by the caller.
func (r *UserRepository) CreateAccount(user *models.User) error {
	query := `
		INSERT INTO User (Username, Password, UserType, EmployeeID)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, user.Username, user.Password, user.UserType, user.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// RemoveAccount deletes an account by username. Returns ErrUserNotFound when
// no row matched, so the caller can report it distinctly from a store failure.
func (r *UserRepository) RemoveAccount(username string) error {
	query := `DELETE FROM User WHERE Username = ?`

	result, err := r.db.Exec(query, username)
	if err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash for a username.
func (r *UserRepository) UpdatePassword(username, passwordHash string) error {
	query := `UPDATE User SET Password = ? WHERE Username = ?`

	_, err := r.db.Exec(query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// UpdateEmail changes the e-mail on the Personnel row linked to the account.
func (r *UserRepository) UpdateEmail(username, email string) error {
	query := `
		UPDATE Personnel
		SET Email = ?
		WHERE EmployeeID IN (SELECT EmployeeID FROM User WHERE Username = ?)
	`

	_, err := r.db.Exec(query, email, username)
	if err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}

	return nil
}

// EmailForUser returns the e-mail address on the Personnel row linked to the
// account, or an empty string when none is on file.
func (r *UserRepository) EmailForUser(username string) (string, error) {
	var email sql.NullString

	query := `
		SELECT Email
		FROM User NATURAL JOIN Personnel
		WHERE Username = ?
	`

	err := r.db.QueryRow(query, username).Scan(&email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get user email: %w", err)
	}

	return email.String, nil
}

// AdminEmails returns the distinct e-mail addresses of every admin account
// whose linked Personnel row has one on file.
func (r *UserRepository) AdminEmails() ([]string, error) {
	var emails []string

	query := `
		SELECT DISTINCT Email
		FROM User NATURAL JOIN Personnel
		WHERE UserType = 'admin' AND Email IS NOT NULL
	`

	err := r.db.Select(&emails, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin emails: %w", err)
	}

	return emails, nil
}
