package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &handlerMockDB{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func setupAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock := setupTestDB(t)
	handler := NewAuthHandler(database.NewUserRepository(mockDB), testLogger())

	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test_session", store))
	router.POST("/check_login.php", handler.Login)
	router.GET("/logout.php", handler.Logout)
	return router, mock
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	t.Run("Missing Credentials", func(t *testing.T) {
		router, mock := setupAuthRouter(t)

		w := postForm(router, "/check_login.php", url.Values{"username": {"alice"}})

		assert.Equal(t, http.StatusFound, w.Code)
		location := w.Header().Get("Location")
		assert.Contains(t, location, "/login.php")
		assert.Contains(t, location, url.QueryEscape("Please enter a username and password."))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown User", func(t *testing.T) {
		router, mock := setupAuthRouter(t)

		mock.ExpectQuery(`SELECT (.+) FROM User`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		w := postForm(router, "/check_login.php", url.Values{
			"username": {"ghost"},
			"password": {"whatever"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), url.QueryEscape("Wrong username or password. Please try again."))
		assert.Empty(t, w.Result().Cookies())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		router, mock := setupAuthRouter(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM User`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"Username", "Password", "UserType", "EmployeeID"}).
				AddRow("alice", string(hash), "admin", "E100"))

		w := postForm(router, "/check_login.php", url.Values{
			"username": {"alice"},
			"password": {"incorrect"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), url.QueryEscape("Wrong username or password. Please try again."))
		assert.Empty(t, w.Result().Cookies())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Admin Login Redirects To Admin Page", func(t *testing.T) {
		router, mock := setupAuthRouter(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM User`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"Username", "Password", "UserType", "EmployeeID"}).
				AddRow("alice", string(hash), "admin", "E100"))

		w := postForm(router, "/check_login.php", url.Values{
			"username": {"alice"},
			"password": {"correct"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin.php", w.Header().Get("Location"))
		assert.NotEmpty(t, w.Result().Cookies())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HR Login Redirects To HR Page", func(t *testing.T) {
		router, mock := setupAuthRouter(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM User`).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"Username", "Password", "UserType", "EmployeeID"}).
				AddRow("bob", string(hash), "humanr", "E200"))

		w := postForm(router, "/check_login.php", url.Values{
			"username": {"bob"},
			"password": {"correct"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/hr.php", w.Header().Get("Location"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLogout(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req := httptest.NewRequest("GET", "/logout.php", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login.php", w.Header().Get("Location"))
}

// Mock database implementation for testing. sqlx wraps the sqlmock connection
// so Get/Select behave the same as against the real store.
type handlerMockDB struct {
	db *sqlx.DB
}

func (m *handlerMockDB) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *handlerMockDB) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *handlerMockDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *handlerMockDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *handlerMockDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *handlerMockDB) Begin() (database.Tx, error) {
	return m.db.DB.Begin()
}

func (m *handlerMockDB) Ping() error {
	return m.db.Ping()
}

func (m *handlerMockDB) Close() error {
	return m.db.Close()
}
