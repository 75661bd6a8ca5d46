package handlers

import (
	"database/sql/driver"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/stretchr/testify/assert"
)

func setupAccountRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock := setupTestDB(t)
	handler := NewAccountHandler(database.NewUserRepository(mockDB), testLogger())

	router := gin.New()
	router.POST("/addAccount.php", handler.Add)
	router.POST("/removeAccount.php", handler.Remove)
	return router, mock
}

func TestAddAccount(t *testing.T) {
	fullForm := func() url.Values {
		return url.Values{
			"employeeID":       {"E100"},
			"username":         {"jsmith"},
			"password":         {"hunter22"},
			"confirm_password": {"hunter22"},
			"usertype":         {"admin"},
		}
	}

	t.Run("Missing Parameter", func(t *testing.T) {
		router, _ := setupAccountRouter(t)

		form := fullForm()
		form.Del("usertype")
		w := postForm(router, "/addAccount.php", form)

		assert.Equal(t, "<p>One or more parameters were not found.</p>\n", w.Body.String())
	})

	t.Run("Blank Field", func(t *testing.T) {
		router, _ := setupAccountRouter(t)

		form := fullForm()
		form.Set("username", "   ")
		w := postForm(router, "/addAccount.php", form)

		assert.Equal(t, "<p><strong>Error: Please fill all fields.</strong></p>\n<br/>\n<p><strong>Please go back and try again.</strong></p>\n", w.Body.String())
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		router, _ := setupAccountRouter(t)

		form := fullForm()
		form.Set("confirm_password", "hunter23")
		w := postForm(router, "/addAccount.php", form)

		assert.Equal(t, "<p><strong>Error: The password did not match its confirmation.</strong></p>\n<p><strong>Please go back and try again.</strong></p>\n", w.Body.String())
	})

	t.Run("Success Stores Hash Not Plaintext", func(t *testing.T) {
		router, mock := setupAccountRouter(t)

		var storedPassword string
		mock.ExpectExec(`INSERT INTO User`).
			WithArgs("jsmith", passwordCapture{&storedPassword}, "admin", "E100").
			WillReturnResult(sqlmock.NewResult(1, 1))

		w := postForm(router, "/addAccount.php", fullForm())

		assert.Equal(t, "<p><strong>User added successfully.</strong></p>\n", w.Body.String())
		assert.NotEqual(t, "hunter22", storedPassword)
		assert.Contains(t, storedPassword, "$2a$")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Store Failure", func(t *testing.T) {
		router, mock := setupAccountRouter(t)

		mock.ExpectExec(`INSERT INTO User`).
			WillReturnError(assert.AnError)

		w := postForm(router, "/addAccount.php", fullForm())

		assert.Equal(t, queryFailedMessage, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveAccount(t *testing.T) {
	t.Run("Missing Username", func(t *testing.T) {
		router, _ := setupAccountRouter(t)

		w := postForm(router, "/removeAccount.php", url.Values{})

		assert.Equal(t, "<p><strong>Cannot locate username.</strong></p>", w.Body.String())
	})

	t.Run("Blank Username", func(t *testing.T) {
		router, _ := setupAccountRouter(t)

		w := postForm(router, "/removeAccount.php", url.Values{"username": {"  "}})

		assert.Equal(t, "<p><strong>Please enter a username.</strong></p>", w.Body.String())
	})

	t.Run("Unknown Account", func(t *testing.T) {
		router, mock := setupAccountRouter(t)

		mock.ExpectExec(`DELETE FROM User`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := postForm(router, "/removeAccount.php", url.Values{"username": {"ghost"}})

		assert.Equal(t, "<p><strong>User account does not exist.</strong></p>", w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		router, mock := setupAccountRouter(t)

		mock.ExpectExec(`DELETE FROM User`).
			WithArgs("jsmith").
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := postForm(router, "/removeAccount.php", url.Values{"username": {"jsmith"}})

		assert.Equal(t, "<p><strong>User account removed.</strong></p>", w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// passwordCapture records the bound password argument so the test can check
// what actually reached the store.
type passwordCapture struct {
	dest *string
}

func (p passwordCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		if b, isBytes := v.([]byte); isBytes {
			s, ok = string(b), true
		}
	}
	if !ok {
		return false
	}
	*p.dest = s
	return true
}
