package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
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

const testReservationUid = "9c0a1f44-20bb-4e0e-8f0e-6a4f2a5d9e01"

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	requested := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), patronProfile, model.CreateReservationRequest{BookUid: testBookUid}).
					Return(model.Reservation{
						ReservationUid: testReservationUid,
						Username:       "alice",
						BookUid:        testBookUid,
						RequestDate:    requested,
						Status:         model.ReservationPending,
						Priority:       2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reservationUid":"` + testReservationUid + `","username":"alice","bookUid":"` + testBookUid + `","requestDate":"2026-08-20T09:30:00Z","status":"PENDING","priority":2}`,
			},
		},
		{
			name: "err. copies on shelf",
			body: `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), patronProfile, model.CreateReservationRequest{BookUid: testBookUid}).
					Return(model.Reservation{}, errs.ErrBookAvailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book has available copies, borrow it instead"}`,
			},
		},
		{
			name: "err. duplicate reservation",
			body: `{"bookUid":"` + testBookUid + `"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), patronProfile, model.CreateReservationRequest{BookUid: testBookUid}).
					Return(model.Reservation{}, errs.ErrDuplicateReservation)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"pending reservation for this book already exists"}`,
			},
		},
		{
			name:         "err. missing bookUid",
			body:         `{}`,
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
			e.POST("/api/v1/reservations", h.CreateReservation, md.AuthContext)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tt.body))
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

func TestHandler_TransitionReservation(t *testing.T) {
	t.Parallel()
	expiry := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
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
			name:    "ok. staff promotes to ready",
			profile: staffProfile,
			body:    `{"status":"READY"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				ed := expiry
				r.EXPECT().
					TransitionReservation(gomock.Any(), staffProfile, testReservationUid,
						model.TransitionReservationRequest{Status: model.ReservationReady}).
					Return(model.Reservation{
						ReservationUid: testReservationUid,
						Username:       "alice",
						BookUid:        testBookUid,
						RequestDate:    expiry.AddDate(0, 0, -10),
						Status:         model.ReservationReady,
						Priority:       1,
						ExpiryDate:     &ed,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"reservationUid":"` + testReservationUid + `","username":"alice","bookUid":"` + testBookUid + `","requestDate":"2026-08-25T00:00:00Z","status":"READY","priority":1,"expiryDate":"2026-09-04T00:00:00Z"}`,
			},
		},
		{
			name:    "err. patron may only cancel",
			profile: patronProfile,
			body:    `{"status":"READY"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					TransitionReservation(gomock.Any(), patronProfile, testReservationUid,
						model.TransitionReservationRequest{Status: model.ReservationReady}).
					Return(model.Reservation{}, errs.ErrForbidden)
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"operation not permitted for this role"}`,
			},
		},
		{
			name:    "err. pickup window passed",
			profile: staffProfile,
			body:    `{"status":"FULFILLED"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					TransitionReservation(gomock.Any(), staffProfile, testReservationUid,
						model.TransitionReservationRequest{Status: model.ReservationFulfilled}).
					Return(model.Reservation{}, errs.ErrReservationExpired)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"reservation has expired"}`,
			},
		},
		{
			name:    "err. invalid transition",
			profile: staffProfile,
			body:    `{"status":"FULFILLED"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					TransitionReservation(gomock.Any(), staffProfile, testReservationUid,
						model.TransitionReservationRequest{Status: model.ReservationFulfilled}).
					Return(model.Reservation{}, errs.ErrInvalidTransition)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid status transition"}`,
			},
		},
		{
			name:         "err. unknown target status",
			profile:      staffProfile,
			body:         `{"status":"EXPIRED"}`,
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
			e.PATCH("/api/v1/reservations/:reservationUid", h.TransitionReservation, md.AuthContext)

			r := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+testReservationUid, strings.NewReader(tt.body))
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
