package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"freelance/cmd"
	httpin "freelance/internal/adapters/in/http"
	"freelance/internal/adapters/out/codestore"
	"freelance/internal/adapters/out/email"
	postgres_adapter "freelance/internal/adapters/out/postgres"
	"freelance/internal/adapters/out/postgres/sqlitetest"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/party"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const (
	secret           = "test-secret"
	customerAccount  = 100
	performerAccount = 200
	strangerAccount  = 300
)

type ServerTestSuite struct {
	suite.Suite
	e         *echo.Echo
	root      *cmd.CompositionRoot
	auth      *httpin.Authenticator
	codes     *codestore.MemoryStore
	performer *party.Performer
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := sqlitetest.Open(suite.T())

	parties := postgres_adapter.NewGormUnitOfWorkFactory(db).New().PartyRepository()
	customer, err := party.NewCustomer(customerAccount, "Anna", "anna@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(parties.AddCustomer(ctx, customer))
	stranger, err := party.NewCustomer(strangerAccount, "Gleb", "gleb@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(parties.AddCustomer(ctx, stranger))
	suite.performer, err = party.NewPerformer(performerAccount, "Boris", "boris@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(parties.AddPerformer(ctx, suite.performer))

	suite.codes = codestore.NewMemoryStore(kernel.SystemClock{})
	suite.root = cmd.NewCompositionRoot(
		cmd.Config{JWTSecret: secret, VerificationCodeTTL: time.Minute, NotificationRetention: time.Hour},
		db, suite.codes, email.NewLogSender(logger), logger,
	)

	suite.e = echo.New()
	suite.root.CreateHTTPServer().RegisterRoutes(suite.e)
	suite.auth = httpin.NewAuthenticator(secret, logger)
}

func (suite *ServerTestSuite) token(account kernel.ID, role kernel.Role) string {
	caller, err := kernel.NewCaller(account, role)
	suite.Require().NoError(err)
	token, err := suite.auth.Issue(caller, time.Hour)
	suite.Require().NoError(err)
	return token
}

func (suite *ServerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](suite *ServerTestSuite, rec *httptest.ResponseRecorder) T {
	var v T
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (suite *ServerTestSuite) createOrder() int64 {
	rec := suite.do(http.MethodPost, "/api/v1/orders", suite.token(customerAccount, kernel.Customer),
		httpin.CreateOrderRequest{Title: "Landing page", Budget: 1000})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.CreatedResponse](suite, rec).ID
}

func orderPath(id int64, suffix string) string {
	return "/api/v1/orders/" + strconv.FormatInt(id, 10) + suffix
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestAuthentication() {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			suite.e.ServeHTTP(rec, req)
			suite.Equal(http.StatusUnauthorized, rec.Code)
		})
	}

	suite.Run("foreign secret", func() {
		other := httpin.NewAuthenticator("other-secret", slog.New(slog.NewTextHandler(io.Discard, nil)))
		caller, err := kernel.NewCaller(customerAccount, kernel.Customer)
		suite.Require().NoError(err)
		token, err := other.Issue(caller, time.Hour)
		suite.Require().NoError(err)

		suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/v1/chats", token, nil).Code)
	})

	suite.Run("expired token", func() {
		caller, err := kernel.NewCaller(customerAccount, kernel.Customer)
		suite.Require().NoError(err)
		token, err := suite.auth.Issue(caller, -time.Minute)
		suite.Require().NoError(err)

		suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/v1/chats", token, nil).Code)
	})
}

func (suite *ServerTestSuite) TestValidationErrorsCarryTheField() {
	customer := suite.token(customerAccount, kernel.Customer)

	rec := suite.do(http.MethodPost, "/api/v1/orders", customer, httpin.CreateOrderRequest{Budget: 10})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("title", decode[httpin.ErrorResponse](suite, rec).Field)

	rec = suite.do(http.MethodPost, "/api/v1/orders/abc/activate", customer, nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("id", decode[httpin.ErrorResponse](suite, rec).Field)

	rec = suite.do(http.MethodGet, "/api/v1/notifications?unread=maybe", customer, nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("unread", decode[httpin.ErrorResponse](suite, rec).Field)
}

func (suite *ServerTestSuite) TestOrderLifecycle() {
	customer := suite.token(customerAccount, kernel.Customer)
	performer := suite.token(performerAccount, kernel.Performer)
	orderID := suite.createOrder()

	rec := suite.do(http.MethodPost, orderPath(orderID, "/replies"), performer, nil)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, orderPath(orderID, "/replies"), performer, nil)
	suite.Equal(http.StatusConflict, rec.Code)

	rec = suite.do(http.MethodPost, orderPath(orderID, "/performer"), suite.token(strangerAccount, kernel.Customer),
		httpin.AssignPerformerRequest{PerformerID: suite.performer.ID().Int64()})
	suite.Equal(http.StatusForbidden, rec.Code)
	suite.Equal("access denied", decode[httpin.ErrorResponse](suite, rec).Message)

	rec = suite.do(http.MethodPost, orderPath(orderID, "/performer"), customer,
		httpin.AssignPerformerRequest{PerformerID: suite.performer.ID().Int64()})
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, orderPath(orderID, "/deactivate"), customer, nil)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/performer/orders", performer, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	orders := decode[[]httpin.OrderResponse](suite, rec)
	suite.Require().Len(orders, 1)
	suite.Equal("IN_PROCESS", orders[0].Status)

	rec = suite.do(http.MethodGet, "/api/v1/chats", customer, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	chats := decode[[]httpin.ChatResponse](suite, rec)
	suite.Require().Len(chats, 1)
	chatPath := "/api/v1/chats/" + strconv.FormatInt(chats[0].ID, 10)

	rec = suite.do(http.MethodPost, chatPath+"/messages", performer, httpin.SendMessageRequest{Text: "Starting today"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.Equal("Performer", decode[httpin.MessageResponse](suite, rec).SenderType)

	rec = suite.do(http.MethodGet, chatPath+"/unread", customer, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(int64(1), decode[httpin.CountResponse](suite, rec).Count)

	rec = suite.do(http.MethodGet, chatPath+"/messages", customer, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Len(decode[[]httpin.MessageResponse](suite, rec), 1)

	rec = suite.do(http.MethodGet, chatPath+"/unread", customer, nil)
	suite.Equal(int64(0), decode[httpin.CountResponse](suite, rec).Count)

	rec = suite.do(http.MethodGet, "/api/v1/notifications", customer, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	notifications := decode[[]httpin.NotificationResponse](suite, rec)
	suite.Require().Len(notifications, 1)
	suite.Equal("REPLY", notifications[0].Type)

	rec = suite.do(http.MethodPost, "/api/v1/notifications/"+strconv.FormatInt(notifications[0].ID, 10)+"/read", customer, nil)
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/notifications?unread=true", customer, nil)
	suite.Empty(decode[[]httpin.NotificationResponse](suite, rec))
}

func (suite *ServerTestSuite) TestMissingOrderIsNotFound() {
	rec := suite.do(http.MethodPost, orderPath(9999, "/replies"), suite.token(performerAccount, kernel.Performer), nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestVerificationCodes() {
	rec := suite.do(http.MethodPost, "/api/v1/verification/codes", "",
		httpin.VerificationCodeRequest{Email: "Anna@Example.com"})
	suite.Require().Equal(http.StatusAccepted, rec.Code, rec.Body.String())

	code, ok, err := suite.codes.GetIfNotExpired(context.Background(), "anna@example.com")
	suite.Require().NoError(err)
	suite.Require().True(ok)

	wrong := "000000"
	if string(code) == wrong {
		wrong = "111111"
	}
	rec = suite.do(http.MethodPost, "/api/v1/verification/confirmations", "",
		httpin.ConfirmVerificationCodeRequest{Email: "anna@example.com", Code: wrong})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("code", decode[httpin.ErrorResponse](suite, rec).Field)

	rec = suite.do(http.MethodPost, "/api/v1/verification/confirmations", "",
		httpin.ConfirmVerificationCodeRequest{Email: "anna@example.com", Code: string(code)})
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/verification/confirmations", "",
		httpin.ConfirmVerificationCodeRequest{Email: "anna@example.com", Code: string(code)})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestWebsocketReceivesNotifications() {
	srv := httptest.NewServer(suite.e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?token=" + suite.token(customerAccount, kernel.Customer)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()
	suite.Require().Eventually(func() bool {
		return suite.root.Hub().Subscribers("notifications.100") == 1
	}, time.Second, 10*time.Millisecond)

	orderID := suite.createOrder()
	rec := suite.do(http.MethodPost, orderPath(orderID, "/replies"), suite.token(performerAccount, kernel.Performer), nil)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	suite.Require().NoError(err)

	var frame struct {
		Topic   string `json:"topic"`
		Payload struct {
			EventID string `json:"eventId"`
			Type    string `json:"type"`
			OrderID int64  `json:"orderId"`
		} `json:"payload"`
	}
	suite.Require().NoError(json.Unmarshal(raw, &frame))
	suite.Equal("notifications.100", frame.Topic)
	suite.Equal("REPLY", frame.Payload.Type)
	suite.Equal(orderID, frame.Payload.OrderID)
	suite.NotEmpty(frame.Payload.EventID)
}
