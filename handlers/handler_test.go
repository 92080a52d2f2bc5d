package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"dinedash-api/config"
	"dinedash-api/handlers"
	"dinedash-api/models"
	"dinedash-api/payments"
	"dinedash-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testSecret   = "test-secret"
	testPassword = "pw123456"
)

// fakeProvider stands in for the payment processor. Sessions start unpaid;
// tests mark them paid via the status map.
type fakeProvider struct {
	mu          sync.Mutex
	created     int
	statusCalls int
	status      map[string]string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{status: map[string]string{}}
}

func (f *fakeProvider) CreateSession(_ context.Context, _ payments.CreateSessionParams) (*payments.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	id := fmt.Sprintf("cs_test_%d", f.created)
	f.status[id] = "unpaid"
	return &payments.Session{ID: id, URL: "https://checkout.example.com/" + id}, nil
}

func (f *fakeProvider) SessionStatus(_ context.Context, sessionID string) (*payments.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	s, ok := f.status[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return &payments.Status{SessionID: sessionID, PaymentStatus: s}, nil
}

func (f *fakeProvider) ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	if signature != "t=valid" {
		return nil, errors.New("signature verification failed")
	}
	var body struct {
		SessionID     string `json:"session_id"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, err
	}
	return &payments.WebhookEvent{SessionID: body.SessionID, PaymentStatus: body.PaymentStatus}, nil
}

func (f *fakeProvider) markPaid(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[sessionID] = "paid"
}

func (f *fakeProvider) statusCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

// fakeNotifier records notifications synchronously.
type fakeNotifier struct {
	mu     sync.Mutex
	emails []string
	sms    []string
}

func (n *fakeNotifier) SendEmail(to, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, to+": "+subject)
}

func (n *fakeNotifier) SendSMS(phone, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, phone+": "+message)
}

func (n *fakeNotifier) emailCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.emails)
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	provider *fakeProvider
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	provider := newFakeProvider()
	notifier := &fakeNotifier{}
	h := handlers.New(db, zaptest.NewLogger(t), provider, notifier, nil, []byte(testSecret))

	router := gin.New()
	routes.SetupRoutes(router, h)

	return &testEnv{db: db, router: router, provider: provider, notifier: notifier}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doWebhook posts a raw webhook payload with the given signature header.
func (e *testEnv) doWebhook(t *testing.T, body interface{}, signature string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// signup registers a user through the API and returns the issued token.
func (e *testEnv) signup(t *testing.T, role, email, name string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/"+role+"/signup", "", gin.H{
		"email":    email,
		"password": testPassword,
		"name":     name,
		"phone":    "+911234567890",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) login(t *testing.T, role, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/auth/"+role+"/login", "", gin.H{
		"email":    email,
		"password": password,
	})
}

// adminToken provisions the bootstrap admin and logs in.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	require.NoError(t, config.EnsureAdmin(e.db, "admin@dinedash.test", "adminsecret"))
	w := e.login(t, "admin", "admin@dinedash.test", "adminsecret")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	return resp.Token
}

// createRestaurant registers a restaurant for the given owner token.
func (e *testEnv) createRestaurant(t *testing.T, ownerToken, name string, seatCapacity int) models.Restaurant {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/restaurants", ownerToken, gin.H{
		"name":          name,
		"description":   "test restaurant",
		"cuisine":       "Indian",
		"address":       "1 Test Street",
		"phone":         "+911112223334",
		"hours":         "10:00-22:00",
		"service_type":  "both",
		"seat_capacity": seatCapacity,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var restaurant models.Restaurant
	decode(t, w, &restaurant)
	require.NotEmpty(t, restaurant.RestaurantID)
	return restaurant
}
