package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context, page, size int) ([]model.Book, error)
	AdjustBookStatus(ctx context.Context, bookUid string, action model.BookAction, affectedCopies int) (model.Book, []model.Reservation, error)

	IssueLoan(ctx context.Context, username, issuedBy, bookUid string, loanDays int) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanUid string, condition model.Condition, notes string) (model.Loan, *model.Fine, error)
	RenewLoan(ctx context.Context, loanUid string) (model.Loan, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	ListLoans(ctx context.Context, username string) ([]model.Loan, error)

	CreateReservation(ctx context.Context, username, bookUid string) (model.Reservation, error)
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	ListReservations(ctx context.Context, username string) (items, expired []model.Reservation, err error)
	TransitionReservation(ctx context.Context, reservationUid string, to model.ReservationStatus) (model.Reservation, error)

	CreateFine(ctx context.Context, fine model.Fine) (model.Fine, error)
	ResolveFine(ctx context.Context, fineUid string, req model.ResolveFineRequest, resolvedBy string) (model.Fine, error)
	ListFines(ctx context.Context, username string) ([]model.Fine, error)
	PendingFineTotal(ctx context.Context, username string) (float64, error)

	RecordAudit(ctx context.Context, bookUid, auditedBy string, req model.RecordAuditRequest) (model.InventoryAudit, error)
	ResolveAudit(ctx context.Context, auditUid, resolvedBy, notes string) (model.InventoryAudit, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	bookTableName        = `book`
	loanTableName        = `loan`
	reservationTableName = `reservation`
	fineTableName        = `fine`
	auditTableName       = `inventory_audit`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// inTx runs fn inside a transaction. Every precondition-check-then-
// mutate sequence in this package goes through here so that no check
// can race the mutation it guards.
func (r *repository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
