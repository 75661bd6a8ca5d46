package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/middleware"
	"github.com/officelayout/directory-backend/pkg/validator"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SettingsHandler handles self-service password and e-mail changes
type SettingsHandler struct {
	userRepo  *database.UserRepository
	validator *validator.FieldValidator
	logger    *logrus.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(userRepo *database.UserRepository, fieldValidator *validator.FieldValidator, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		userRepo:  userRepo,
		validator: fieldValidator,
		logger:    logger,
	}
}

// Submit applies whichever settings changes were requested. Each change is
// independent; the outcome messages accumulate and ride back on the redirect.
// POST /submit_settings.php
func (h *SettingsHandler) Submit(c *gin.Context) {
	user, ok := middleware.GetRequestUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login.php")
		return
	}

	newPass := c.PostForm("new_pass")
	confirmPass := c.PostForm("confirm_pass")
	email := c.PostForm("email")

	var messages []string

	if newPass != "" || confirmPass != "" {
		if newPass != confirmPass {
			messages = append(messages, "Error: The new password and the password confirmation entered did not match.")
		} else if msg := h.changePassword(user.Username, newPass); msg != "" {
			messages = append(messages, msg)
		}
	}

	if email != "" {
		if h.validator.Email(email) != nil {
			messages = append(messages, "Error: The new e-mail address is not valid.")
		} else if msg := h.changeEmail(user.Username, email); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		messages = append(messages, "No request was made.")
	}

	var combined string
	for i, m := range messages {
		if i > 0 {
			combined += " "
		}
		combined += m
	}

	c.Redirect(http.StatusFound, "/settings.php?msg="+url.QueryEscape(combined))
}

func (h *SettingsHandler) changePassword(username, newPass string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		h.logger.WithError(err).Error("Password hash failed")
		return queryFailedMessage
	}

	if err := h.userRepo.UpdatePassword(username, string(hash)); err != nil {
		h.logger.WithError(err).Error("Password update failed")
		return queryFailedMessage
	}

	h.logger.WithField("username", username).Info("Password changed")
	return "Password was changed successfully!"
}

func (h *SettingsHandler) changeEmail(username, email string) string {
	if err := h.userRepo.UpdateEmail(username, email); err != nil {
		h.logger.WithError(err).Error("E-mail update failed")
		return queryFailedMessage
	}

	h.logger.WithField("username", username).Info("E-mail address changed")
	return "E-mail address was changed successfully!"
}
