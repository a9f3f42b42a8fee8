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

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/handler"
	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
	md "github.com/libstack/lending-service/pkg/middleware"
	"github.com/libstack/lending-service/pkg/validate"

	service_mocks "github.com/libstack/lending-service/internal/handler/mocks"
)

const (
	testBookUid = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
	testLoanUid = "5b1f2c77-43a1-4be2-8a9f-1d26c41f30a2"
)

var (
	patronProfile = auth.Profile{Username: "alice", Role: auth.RolePatron, Status: auth.StatusActive}
	staffProfile  = auth.Profile{Username: "marge", Role: auth.RoleLibrarian, Status: auth.StatusActive}
)

func setIdentityHeaders(r *http.Request, p auth.Profile) {
	if p.Username != "" {
		r.Header.Set(auth.XUserNameHeader, p.Username)
	}
	r.Header.Set(auth.XUserRoleHeader, p.Role)
	r.Header.Set(auth.XUserStatusHeader, p.Status)
}

func TestHandler_IssueLoan(t *testing.T) {
	t.Parallel()
	issued := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		profile      auth.Profile
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "ok",
			profile: patronProfile,
			body:    `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					IssueLoan(gomock.Any(), patronProfile, model.IssueLoanRequest{BookUid: testBookUid}).
					Return(model.Loan{
						LoanUid:   testLoanUid,
						Username:  "alice",
						BookUid:   testBookUid,
						IssuedBy:  "alice",
						IssueDate: issued,
						DueDate:   issued.AddDate(0, 0, model.DefaultLoanDays),
						Status:    model.LoanActive,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"loanUid":"` + testLoanUid + `","username":"alice","bookUid":"` + testBookUid + `","issuedBy":"alice","issueDate":"2026-08-01T10:00:00Z","dueDate":"2026-08-15T10:00:00Z","renewalCount":0,"status":"ACTIVE","fineAmount":0}`,
			},
		},
		{
			name:         "err. no identity",
			profile:      auth.Profile{},
			body:         `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"user-name is empty"}`,
			},
		},
		{
			name:         "err. bookUid not a uuid",
			profile:      patronProfile,
			body:         `{"bookUid":"not-a-uuid"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:    "err. no available copies",
			profile: patronProfile,
			body:    `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					IssueLoan(gomock.Any(), patronProfile, model.IssueLoanRequest{BookUid: testBookUid}).
					Return(model.Loan{}, errs.ErrBookUnavailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no available copies"}`,
			},
		},
		{
			name:    "err. duplicate active loan",
			profile: patronProfile,
			body:    `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					IssueLoan(gomock.Any(), patronProfile, model.IssueLoanRequest{BookUid: testBookUid}).
					Return(model.Loan{}, errs.ErrDuplicateLoan)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"active loan for this book already exists"}`,
			},
		},
		{
			name:    "err. internal",
			profile: patronProfile,
			body:    `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					IssueLoan(gomock.Any(), patronProfile, model.IssueLoanRequest{BookUid: testBookUid}).
					Return(model.Loan{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/loans", h.IssueLoan, md.AuthContext)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			setIdentityHeaders(r, tt.profile)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()
	returned := time.Date(2026, 8, 18, 12, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		profile      auth.Profile
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "ok",
			profile: staffProfile,
			body:    `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				rd := returned
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid, model.ReturnLoanRequest{Condition: model.ConditionGood}).
					Return(model.ReturnLoanResponse{Loan: model.Loan{
						LoanUid:    testLoanUid,
						Username:   "alice",
						BookUid:    testBookUid,
						IssuedBy:   "marge",
						IssueDate:  returned.AddDate(0, 0, -10),
						DueDate:    returned.AddDate(0, 0, 4),
						ReturnDate: &rd,
						Status:     model.LoanReturned,
					}}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loan":{"loanUid":"` + testLoanUid + `","username":"alice","bookUid":"` + testBookUid + `","issuedBy":"marge","issueDate":"2026-08-08T12:00:00Z","dueDate":"2026-08-22T12:00:00Z","returnDate":"2026-08-18T12:00:00Z","renewalCount":0,"status":"RETURNED","fineAmount":0}}`,
			},
		},
		{
			name:         "err. patron cannot accept returns",
			profile:      patronProfile,
			body:         `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"staff role required"}`,
			},
		},
		{
			name:    "err. loan not active",
			profile: staffProfile,
			body:    `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid, model.ReturnLoanRequest{Condition: model.ConditionGood}).
					Return(model.ReturnLoanResponse{}, errs.ErrLoanNotActive)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"loan is not active"}`,
			},
		},
		{
			name:         "err. bad condition",
			profile:      staffProfile,
			body:         `{"condition":"pristine"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/loans/:loanUid/return", h.ReturnLoan, md.AuthContext, md.StaffOnly)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+testLoanUid+"/return", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			setIdentityHeaders(r, tt.profile)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_RenewLoan(t *testing.T) {
	t.Parallel()
	due := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					RenewLoan(gomock.Any(), patronProfile, testLoanUid).
					Return(model.RenewLoanResponse{LoanUid: testLoanUid, DueDate: due, RenewalCount: 1}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loanUid":"` + testLoanUid + `","dueDate":"2026-09-11T00:00:00Z","renewalCount":1}`,
			},
		},
		{
			name: "err. renewal cap",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					RenewLoan(gomock.Any(), patronProfile, testLoanUid).
					Return(model.RenewLoanResponse{}, errs.ErrMaxRenewals)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"maximum renewals reached"}`,
			},
		},
		{
			name: "err. unknown loan",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					RenewLoan(gomock.Any(), patronProfile, testLoanUid).
					Return(model.RenewLoanResponse{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/loans/:loanUid/renew", h.RenewLoan, md.AuthContext)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+testLoanUid+"/renew", http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			setIdentityHeaders(r, patronProfile)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ListLoans(t *testing.T) {
	t.Parallel()

	t.Run("staff can inspect another user", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		svc := service_mocks.NewMockLendingService(c)
		h := handler.New(svc, zap.NewExample().Named("test"))

		e := echo.New()
		e.Validator = validate.NewCustomValidator()
		e.GET("/api/v1/loans", h.ListLoans, md.AuthContext)

		svc.EXPECT().ListLoans(gomock.Any(), "bob").Return([]model.Loan{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/loans?username=bob", http.NoBody)
		setIdentityHeaders(r, staffProfile)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("patron override is ignored", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		svc := service_mocks.NewMockLendingService(c)
		h := handler.New(svc, zap.NewExample().Named("test"))

		e := echo.New()
		e.Validator = validate.NewCustomValidator()
		e.GET("/api/v1/loans", h.ListLoans, md.AuthContext)

		svc.EXPECT().ListLoans(gomock.Any(), "alice").Return([]model.Loan{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/loans?username=bob", http.NoBody)
		setIdentityHeaders(r, patronProfile)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})
}
