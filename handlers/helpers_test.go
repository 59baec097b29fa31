package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"homechef-api/config"
	"homechef-api/models"
	"homechef-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database into the global config
// and returns a router with the full route table registered.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database consistent and
	// serializes concurrent test requests at the store, the same
	// arbiter production relies on.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// postForm submits a form-encoded body, the way /auth/token expects
func postForm(r *gin.Engine, path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers through the real endpoint so membership rows
// are created the same way production does.
func registerUser(t *testing.T, r *gin.Engine, role models.UserRole, email, password, address string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/", "", gin.H{
		"FirstName": "Test",
		"LastName":  string(role),
		"Email":     email,
		"PhoneNo":   "0100000000",
		"Password":  password,
		"Role":      role,
		"Address":   address,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// login exchanges credentials for a bearer token via the form endpoint
func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	require.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// seedAdmin inserts an admin account directly, the way startup seeding
// does, and returns a logged-in token.
func seedAdmin(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.User{FirstName: "Admin", LastName: "Seed", Email: email, HashedPassword: string(hash)}
	require.NoError(t, config.DB.Create(&admin).Error)
	require.NoError(t, config.DB.Create(&models.Admin{AdminUID: admin.UID}).Error)
	return login(t, r, email, password)
}

// createKitchen registers a kitchen for an owner token and returns its id
func createKitchen(t *testing.T, r *gin.Engine, ownerToken, name string) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/homekitchens/", ownerToken, gin.H{
		"Name":    name,
		"Address": "12 Side Street",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	kitchen, _ := body["kitchen"].(map[string]interface{})
	require.NotNil(t, kitchen)
	return uint(kitchen["KitchenID"].(float64))
}

// createMenuItem adds a menu item to a kitchen and returns its id
func createMenuItem(t *testing.T, r *gin.Engine, ownerToken string, kitchenID uint, name string, price float64) uint {
	t.Helper()
	path := fmt.Sprintf("/homekitchens/%d/menuitems", kitchenID)
	w := doJSON(r, http.MethodPost, path, ownerToken, gin.H{
		"Name":        name,
		"Description": "test item",
		"Price":       price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	item, _ := body["item"].(map[string]interface{})
	require.NotNil(t, item)
	return uint(item["ItemID"].(float64))
}
