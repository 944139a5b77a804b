package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minizon/minizon/internal/models"
	"github.com/minizon/minizon/internal/store"
)

// mockUserStore implements UserStore for testing.
type mockUserStore struct {
	user    *models.User
	balance decimal.Decimal
	err     error

	creditCalls int
}

func (m *mockUserStore) Register(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = 1
	return nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, name, address string) error {
	return m.err
}

func (m *mockUserStore) Credit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	m.creditCalls++
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.balance, nil
}

func newUserRouter(mock *mockUserStore) *gin.Engine {
	h := &Handlers{Users: mock}

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	authed := r.Group("/")
	authed.Use(authAs(1))
	authed.GET("/profile/me", h.GetMe)
	authed.PUT("/profile/me", h.UpdateMe)
	authed.POST("/profile/topup", h.TopUp)
	return r
}

func TestRegister_Success(t *testing.T) {
	router := newUserRouter(&mockUserStore{})

	recorder := doJSON(t, router, "POST", "/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret-pass","address":"1 Main St"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Account created successfully")
	// New accounts start with a zero balance and never echo the password.
	assert.Contains(t, body, `"balance":"0"`)
	assert.NotContains(t, body, "s3cret-pass")
	assert.NotContains(t, body, "passwordHash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newUserRouter(&mockUserStore{err: store.ErrDuplicateEmail})

	recorder := doJSON(t, router, "POST", "/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	router := newUserRouter(&mockUserStore{})

	recorder := doJSON(t, router, "POST", "/register",
		`{"name":"Alice","email":"alice@example.com","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLogin_Success(t *testing.T) {
	var password models.Password
	require.NoError(t, password.Set("s3cret-pass"))

	router := newUserRouter(&mockUserStore{user: &models.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: password.Hash,
	}})

	recorder := doJSON(t, router, "POST", "/login",
		`{"email":"alice@example.com","password":"s3cret-pass"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token"`)
}

func TestLogin_WrongPassword(t *testing.T) {
	var password models.Password
	require.NoError(t, password.Set("s3cret-pass"))

	router := newUserRouter(&mockUserStore{user: &models.User{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: password.Hash,
	}})

	recorder := doJSON(t, router, "POST", "/login",
		`{"email":"alice@example.com","password":"wrong-pass"}`)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid email or password")
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	router := newUserRouter(&mockUserStore{err: store.ErrNotFound})

	recorder := doJSON(t, router, "POST", "/login",
		`{"email":"nobody@example.com","password":"whatever-pass"}`)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid email or password")
}

func TestTopUp_Success(t *testing.T) {
	mock := &mockUserStore{balance: decimal.RequireFromString("125.50")}
	router := newUserRouter(mock)

	recorder := doJSON(t, router, "POST", "/profile/topup", `{"amount":"25.50"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"currentBalance":"125.5"`)
	assert.Equal(t, 1, mock.creditCalls)
}

func TestTopUp_RejectsNonPositiveAmount(t *testing.T) {
	mock := &mockUserStore{}
	router := newUserRouter(mock)

	for _, body := range []string{`{"amount":"0"}`, `{"amount":"-5"}`} {
		recorder := doJSON(t, router, "POST", "/profile/topup", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "body %s", body)
	}
	assert.Equal(t, 0, mock.creditCalls)
}
