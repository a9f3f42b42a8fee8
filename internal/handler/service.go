package handler

import (
	"context"

	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/internal/service"
	"github.com/libstack/lending-service/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context, page, size int) ([]model.Book, error)
	AdjustBookStatus(ctx context.Context, p auth.Profile, bookUid string, req model.AdjustBookStatusRequest) (model.Book, error)

	IssueLoan(ctx context.Context, p auth.Profile, req model.IssueLoanRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanUid string, req model.ReturnLoanRequest) (model.ReturnLoanResponse, error)
	RenewLoan(ctx context.Context, p auth.Profile, loanUid string) (model.RenewLoanResponse, error)
	ListLoans(ctx context.Context, username string) ([]model.Loan, error)

	CreateReservation(ctx context.Context, p auth.Profile, req model.CreateReservationRequest) (model.Reservation, error)
	ListReservations(ctx context.Context, username string) ([]model.Reservation, error)
	TransitionReservation(ctx context.Context, p auth.Profile, reservationUid string, req model.TransitionReservationRequest) (model.Reservation, error)

	CreateFine(ctx context.Context, p auth.Profile, req model.CreateFineRequest) (model.Fine, error)
	ResolveFine(ctx context.Context, p auth.Profile, fineUid string, req model.ResolveFineRequest) (model.Fine, error)
	ListFines(ctx context.Context, username string) ([]model.Fine, error)

	RecordAudit(ctx context.Context, p auth.Profile, bookUid string, req model.RecordAuditRequest) (model.InventoryAudit, error)
	ResolveAudit(ctx context.Context, p auth.Profile, auditUid, notes string) (model.InventoryAudit, error)
}

var _ LendingService = (*service.Service)(nil)
