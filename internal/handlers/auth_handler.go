package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/middleware"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	userRepo *database.UserRepository
	logger   *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo *database.UserRepository, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login authenticates a username/password pair and establishes the session.
// POST /check_login.php
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		redirectToLogin(c, "Please enter a username and password.")
		return
	}

	user, err := h.userRepo.GetByUsername(username)
	if err != nil {
		// Unknown user and wrong password read the same to the client.
		redirectToLogin(c, "Wrong username or password. Please try again.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		redirectToLogin(c, "Wrong username or password. Please try again.")
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, user.Username)
	if err := sess.Save(); err != nil {
		h.logger.WithError(err).Error("Failed to save session")
		redirectToLogin(c, "Wrong username or password. Please try again.")
		return
	}

	ua := user_agent.New(c.Request.UserAgent())
	browser, browserVersion := ua.Browser()
	h.logger.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.UserType,
		"ip":       c.ClientIP(),
		"os":       ua.OS(),
		"browser":  browser + " " + browserVersion,
		"mobile":   ua.Mobile(),
	}).Info("User logged in")

	if user.UserType == models.RoleAdmin {
		c.Redirect(http.StatusFound, "/admin.php")
	} else {
		c.Redirect(http.StatusFound, "/hr.php")
	}
}

// Logout clears the session.
// GET /logout.php
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		h.logger.WithError(err).Error("Failed to clear session")
	}
	c.Redirect(http.StatusFound, "/login.php")
}

func redirectToLogin(c *gin.Context, msg string) {
	c.Redirect(http.StatusFound, "/login.php?msg="+url.QueryEscape(msg))
}
