package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AccountHandler handles creating and removing login accounts
type AccountHandler struct {
	userRepo *database.UserRepository
	logger   *logrus.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(userRepo *database.UserRepository, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Add creates a login account. The password is hashed before it reaches the
// store; the plaintext is never persisted.
// POST /addAccount.php
func (h *AccountHandler) Add(c *gin.Context) {
	employeeID, hasEmployeeID := c.GetPostForm("employeeID")
	username, hasUsername := c.GetPostForm("username")
	password, hasPassword := c.GetPostForm("password")
	confirm, hasConfirm := c.GetPostForm("confirm_password")
	userType, hasUserType := c.GetPostForm("usertype")

	if !hasEmployeeID || !hasUsername || !hasPassword || !hasConfirm || !hasUserType {
		fragment(c, "<p>One or more parameters were not found.</p>\n")
		return
	}

	employeeID = strings.TrimSpace(employeeID)
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)
	userType = strings.TrimSpace(userType)

	if employeeID == "" || username == "" || password == "" || confirm == "" || userType == "" {
		fragment(c, "<p><strong>Error: Please fill all fields.</strong></p>\n<br/>\n<p><strong>Please go back and try again.</strong></p>\n")
		return
	}

	if password != confirm {
		fragment(c, "<p><strong>Error: The password did not match its confirmation.</strong></p>\n<p><strong>Please go back and try again.</strong></p>\n")
		return
	}

	role := models.Role(userType)
	if !role.IsValid() {
		fragment(c, "<p><strong>Error: Please fill all fields.</strong></p>\n<br/>\n<p><strong>Please go back and try again.</strong></p>\n")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.WithError(err).Error("Password hash failed")
		fragment(c, queryFailedMessage)
		return
	}

	user := &models.User{
		Username:   username,
		Password:   string(hash),
		UserType:   role,
		EmployeeID: sql.NullString{String: employeeID, Valid: true},
	}

	if err := h.userRepo.CreateAccount(user); err != nil {
		h.logger.WithError(err).Error("Account insert failed")
		fragment(c, queryFailedMessage)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"username": username,
		"role":     userType,
	}).Info("Account created")

	fragment(c, "<p><strong>User added successfully.</strong></p>\n")
}

// Remove deletes a login account by username.
// POST /removeAccount.php
func (h *AccountHandler) Remove(c *gin.Context) {
	username, ok := c.GetPostForm("username")
	if !ok {
		fragment(c, "<p><strong>Cannot locate username.</strong></p>")
		return
	}

	username = strings.TrimSpace(username)
	if username == "" {
		fragment(c, "<p><strong>Please enter a username.</strong></p>")
		return
	}

	if err := h.userRepo.RemoveAccount(username); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			fragment(c, "<p><strong>User account does not exist.</strong></p>")
			return
		}
		h.logger.WithError(err).Error("Account remove failed")
		fragment(c, queryFailedMessage)
		return
	}

	h.logger.WithField("username", username).Info("Account removed")

	fragment(c, "<p><strong>User account removed.</strong></p>")
}
