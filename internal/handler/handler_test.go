package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/handler"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/pkg/validate"

	service_mocks "github.com/bookhive/library-service/internal/handler/mocks"
)

type mocks struct {
	catalog  *service_mocks.MockCatalogService
	member   *service_mocks.MockMemberService
	borrow   *service_mocks.MockBorrowService
	fine     *service_mocks.MockFineService
	payment  *service_mocks.MockPaymentService
	feedback *service_mocks.MockFeedbackService
	activity *service_mocks.MockActivityLog
}

func newTestServer(t *testing.T) (*echo.Echo, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		catalog:  service_mocks.NewMockCatalogService(ctrl),
		member:   service_mocks.NewMockMemberService(ctrl),
		borrow:   service_mocks.NewMockBorrowService(ctrl),
		fine:     service_mocks.NewMockFineService(ctrl),
		payment:  service_mocks.NewMockPaymentService(ctrl),
		feedback: service_mocks.NewMockFeedbackService(ctrl),
		activity: service_mocks.NewMockActivityLog(ctrl),
	}
	h := handler.New(m.catalog, m.member, m.borrow, m.fine, m.payment, m.feedback,
		m.activity, session.NewHub(), zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/v1/books", h.GetBooks)
	e.GET("/api/v1/members/:memberId", h.GetMember)
	e.POST("/api/v1/members/register", h.Register)
	e.POST("/api/v1/borrow", h.Borrow)
	e.POST("/api/v1/payments", h.Pay)
	e.GET("/api/v1/members/:memberId/eligibility", h.Eligibility)
	e.GET("/api/v1/members/:memberId/fines", h.GetFines)
	e.PATCH("/api/v1/complaints/:complaintId/status", h.AdvanceComplaint)
	return e, m
}

func TestHandler_GetBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m *mocks)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok",
			target: "/api/v1/books?category=Software&author=donovan",
			mockBehavior: func(m *mocks) {
				m.catalog.EXPECT().
					ListBooks(gomock.Any(), model.SearchCriteria{Category: "Software", Author: "donovan"}).
					Return([]model.Book{
						{
							ID:              "BK001",
							Title:           "The Go Programming Language",
							Author:          "Alan Donovan",
							Category:        "Software",
							ISBN:            "978-0134190440",
							TotalCopies:     3,
							AvailableCopies: 2,
							Available:       true,
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"bookId":"BK001","title":"The Go Programming Language","author":"Alan Donovan","category":"Software","isbn":"978-0134190440","totalCopies":3,"availableCopies":2,"available":true}]`,
			},
		},
		{
			name:   "err. internal",
			target: "/api/v1/books",
			mockBehavior: func(m *mocks) {
				m.catalog.EXPECT().
					ListBooks(gomock.Any(), model.SearchCriteria{}).
					Return(nil, errors.New("store unavailable"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"store unavailable"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, m := newTestServer(t)
			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m *mocks)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"Alice","email":"alice@example.com","password":"s3cret","countryCode":"+91","mobile":"9876543210"}`,
			mockBehavior: func(m *mocks) {
				m.member.EXPECT().
					Register(gomock.Any(), model.RegisterRequest{
						Name:        "Alice",
						Email:       "alice@example.com",
						Password:    "s3cret",
						CountryCode: "+91",
						Mobile:      "9876543210",
					}).
					Return(model.RegisterResponse{
						MemberID: "6d7f1a20-0000-4000-8000-000000000001",
						Name:     "Alice",
						Email:    "alice@example.com",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"memberId":"6d7f1a20-0000-4000-8000-000000000001","name":"Alice","email":"alice@example.com"}`,
			},
		},
		{
			name:         "err. invalid email",
			body:         `{"name":"Alice","email":"not-an-email","password":"s3cret","countryCode":"+91","mobile":"9876543210"}`,
			mockBehavior: func(m *mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. duplicate email",
			body: `{"name":"Alice","email":"alice@example.com","password":"s3cret","countryCode":"+91","mobile":"9876543210"}`,
			mockBehavior: func(m *mocks) {
				m.member.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(model.RegisterResponse{}, errs.ErrDuplicateEmail)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"email is already registered"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, m := newTestServer(t)
			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/members/register", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetMember(t *testing.T) {
	t.Parallel()
	e, m := newTestServer(t)
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	m.member.EXPECT().
		Get(gomock.Any(), "m1").
		Return(model.Member{
			ID:          "m1",
			Name:        "Alice",
			Email:       "alice@example.com",
			Password:    "s3cret",
			CountryCode: "+91",
			Mobile:      "9876543210",
			DateOfBirth: "1990-01-15",
			Address:     "12 Library Lane",
			CreatedAt:   created,
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/members/m1", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	// the credential never reaches the wire
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"memberId":"m1","name":"Alice","email":"alice@example.com","countryCode":"+91","mobile":"9876543210","dateOfBirth":"1990-01-15","address":"12 Library Lane","createdAt":"2025-02-01T09:00:00Z"}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Borrow(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m *mocks)

	borrowedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	req := model.BorrowRequest{
		MemberID: "m1",
		Items:    []model.BorrowItem{{BookID: "BK001", Quantity: 1}},
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"memberId":"m1","items":[{"bookId":"BK001","quantity":1}]}`,
			mockBehavior: func(m *mocks) {
				m.borrow.EXPECT().
					Borrow(gomock.Any(), req).
					Return([]model.BorrowRecord{{
						ID:         "r1",
						MemberID:   "m1",
						BookID:     "BK001",
						BorrowedAt: borrowedAt,
						DueAt:      borrowedAt.AddDate(0, 0, 14),
					}}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `[{"recordId":"r1","memberId":"m1","bookId":"BK001","borrowedAt":"2025-05-01T10:00:00Z","dueAt":"2025-05-15T10:00:00Z"}]`,
			},
		},
		{
			name: "err. not eligible",
			body: `{"memberId":"m1","items":[{"bookId":"BK001","quantity":1}]}`,
			mockBehavior: func(m *mocks) {
				m.borrow.EXPECT().
					Borrow(gomock.Any(), req).
					Return(nil, errors.Wrap(errs.ErrNotEligible, "borrow limit reached"))
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"borrow limit reached: member is not eligible to borrow"}`,
			},
		},
		{
			name: "err. no copies",
			body: `{"memberId":"m1","items":[{"bookId":"BK001","quantity":1}]}`,
			mockBehavior: func(m *mocks) {
				m.borrow.EXPECT().
					Borrow(gomock.Any(), req).
					Return(nil, errs.ErrInsufficientCopies)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"not enough copies available"}`,
			},
		},
		{
			name:         "err. empty items",
			body:         `{"memberId":"m1","items":[]}`,
			mockBehavior: func(m *mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, m := newTestServer(t)
			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/borrow", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Pay(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m *mocks)

	req := model.PaymentRequest{
		MemberID: "m1",
		FineIDs:  []string{"f1"},
		Amount:   25,
		Method:   "UPI",
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"memberId":"m1","fineIds":["f1"],"amount":25,"method":"UPI"}`,
			mockBehavior: func(m *mocks) {
				m.payment.EXPECT().
					Pay(gomock.Any(), req).
					Return(model.PaymentResponse{
						PaymentID:     "p1",
						TransactionID: "t1",
						Amount:        25,
						Status:        "COMPLETED",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"paymentId":"p1","transactionId":"t1","amount":25,"status":"COMPLETED"}`,
			},
		},
		{
			name: "err. declined",
			body: `{"memberId":"m1","fineIds":["f1"],"amount":25,"method":"UPI"}`,
			mockBehavior: func(m *mocks) {
				m.payment.EXPECT().
					Pay(gomock.Any(), req).
					Return(model.PaymentResponse{}, errors.Wrap(errs.ErrPaymentDeclined, "insufficient funds"))
			},
			response: response{
				expectedCode: http.StatusPaymentRequired,
				expectedBody: `{"message":"insufficient funds: payment declined"}`,
			},
		},
		{
			name: "err. stale amount",
			body: `{"memberId":"m1","fineIds":["f1"],"amount":25,"method":"UPI"}`,
			mockBehavior: func(m *mocks) {
				m.payment.EXPECT().
					Pay(gomock.Any(), req).
					Return(model.PaymentResponse{}, errors.Wrap(errs.ErrAmountMismatch, "submitted 25, owed 30"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"submitted 25, owed 30: amount does not match the selected fines"}`,
			},
		},
		{
			name:         "err. bad method",
			body:         `{"memberId":"m1","fineIds":["f1"],"amount":25,"method":"BARTER"}`,
			mockBehavior: func(m *mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, m := newTestServer(t)
			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Eligibility(t *testing.T) {
	t.Parallel()
	e, m := newTestServer(t)
	m.borrow.EXPECT().
		CheckEligibility(gomock.Any(), "m1", 2).
		Return(model.Eligibility{Reason: "borrow limit reached"}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/members/m1/eligibility?requested=2", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"eligible":false,"reason":"borrow limit reached"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_AdvanceComplaint(t *testing.T) {
	t.Parallel()
	e, m := newTestServer(t)
	m.feedback.EXPECT().
		AdvanceComplaint(gomock.Any(), "c1", model.ComplaintStatusClosed).
		Return(model.Complaint{}, errs.ErrIllegalTransition)

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/complaints/c1/status", strings.NewReader(`{"status":"CLOSED"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, `{"message":"illegal status transition"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetFines(t *testing.T) {
	t.Parallel()
	e, m := newTestServer(t)
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	m.fine.EXPECT().
		GeneratePendingFines(gomock.Any(), "m1").
		Return([]model.FineRecord{{
			ID:          "f1",
			MemberID:    "m1",
			BookID:      "BK001",
			DueAt:       due,
			DaysOverdue: 5,
			DailyRate:   5,
			Total:       25,
			Status:      model.FineStatusPending,
		}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/members/m1/fines", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"fineId":"f1","memberId":"m1","bookId":"BK001","dueAt":"2025-04-01T00:00:00Z","daysOverdue":5,"dailyRate":5,"total":25,"status":"PENDING"}]`,
		strings.Trim(w.Body.String(), "\n"))
}
