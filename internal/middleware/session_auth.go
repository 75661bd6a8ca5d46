package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
)

// SessionUserKey is the session key holding the logged-in username
const SessionUserKey = "name"

// UserContextKey is the key used to store the resolved identity in Gin context
const UserContextKey = "request_user"

// loginPath is where denied requests are redirected
const loginPath = "/login.php"

// RequireRole is the authorization gate. It resolves the session to a
// username, re-derives the role from the store (so a role change takes effect
// on the very next request), and either installs a RequestUser in the context
// or aborts with a redirect. Handlers behind it never see a denied request,
// which replaces the original gate's check-the-return-value contract.
func RequireRole(userRepo *database.UserRepository, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, userRepo)
		if !ok {
			return
		}

		if user.Role != required {
			denyWithMessage(c, "You must have "+string(required)+" priveleges to access this page.")
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireLogin admits any authenticated account regardless of role. Used by
// the self-service settings endpoints.
func RequireLogin(userRepo *database.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, userRepo)
		if !ok {
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// GetRequestUser returns the identity installed by the gate.
func GetRequestUser(c *gin.Context) (models.RequestUser, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return models.RequestUser{}, false
	}
	user, ok := value.(models.RequestUser)
	return user, ok
}

func resolveUser(c *gin.Context, userRepo *database.UserRepository) (models.RequestUser, bool) {
	sess := sessions.Default(c)
	nameVal := sess.Get(SessionUserKey)
	username, ok := nameVal.(string)
	if !ok || username == "" {
		denyWithMessage(c, "Please log in to access this page.")
		return models.RequestUser{}, false
	}

	role, err := userRepo.GetRole(username)
	if err != nil {
		// Account removed mid-session; the session is no longer meaningful.
		sess.Clear()
		_ = sess.Save()
		denyWithMessage(c, "Please log in to access this page.")
		return models.RequestUser{}, false
	}

	return models.RequestUser{Username: username, Role: role}, true
}

func denyWithMessage(c *gin.Context, msg string) {
	c.Redirect(http.StatusFound, loginPath+"?msg="+url.QueryEscape(msg))
	c.Abort()
}
