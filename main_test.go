package main_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	mainapp "til"
)

// MockPostEventPublisher stands in for the RabbitMQ client so the app
// builds without a broker.
type MockPostEventPublisher struct {
	mock.Mock
}

func (m *MockPostEventPublisher) PublishPostCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	// In-memory database for the whole top-level suite.
	viper.Set("DATABASE_DRIVER", "sqlite")
	viper.Set("DATABASE_DSN", "file:main_test?mode=memory&cache=shared")
	viper.Set("JWT_SECRET", "test_jwt_secret")

	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	mockMQ := new(MockPostEventPublisher)
	app, _, err := mainapp.NewApp(mockMQ)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	err = json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "healthy", body["status"])
}

func TestUnauthenticatedAccess(t *testing.T) {
	mockMQ := new(MockPostEventPublisher)
	app, _, err := mainapp.NewApp(mockMQ)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPostEventPublishedOnCreate(t *testing.T) {
	mockMQ := new(MockPostEventPublisher)
	mockMQ.On("PublishPostCreated", mock.Anything).Return(nil)

	app, authService, err := mainapp.NewApp(mockMQ)
	assert.NoError(t, err)
	assert.NotNil(t, authService)

	// Register and log in over the wire.
	register := `{"username":"eventuser","email":"event@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(register))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	login := `{"username":"eventuser","password":"password123"}`
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()

	// Creating a post publishes a post.created event.
	create := `{"title":"Learned about queues","content":"Durable ones survive restarts."}`
	req = httptest.NewRequest(http.MethodPost, "/api/posts", jsonBody(create))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginResp["token"])
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	mockMQ.AssertCalled(t, "PublishPostCreated", mock.MatchedBy(func(event map[string]interface{}) bool {
		return event["title"] == "Learned about queues"
	}))
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
