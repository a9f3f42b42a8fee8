package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
)

const loanColumns = `l.id, l.loan_uid, l.username, l.book_id, b.book_uid, l.issued_by,
	l.issue_date, l.due_date, l.return_date, l.renewal_count, l.status, l.fine_amount, l.condition_notes`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IssueLoan runs the whole precondition-check-then-decrement sequence
// under the book row lock, so two concurrent issues of the last copy
// resolve to one success and one ErrBookUnavailable.
func (r *repository) IssueLoan(ctx context.Context, username, issuedBy, bookUid string, loanDays int) (model.Loan, error) {
	var loan model.Loan
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		book, err := lockBook(ctx, tx, bookUid)
		if err != nil {
			return err
		}
		if book.AvailableCopies <= 0 {
			return errors.Wrapf(errs.ErrBookUnavailable, "book %s", bookUid)
		}

		var activeLoans int
		if err := tx.QueryRowContext(ctx,
			`select count(*) from loan where username = $1 and status = 'ACTIVE'`, username).Scan(&activeLoans); err != nil {
			return err
		}
		if activeLoans >= model.BorrowLimit {
			return errors.Wrapf(errs.ErrBorrowLimit, "user %s has %d active loans", username, activeLoans)
		}

		var overdueLoans int
		if err := tx.QueryRowContext(ctx,
			`select count(*) from loan where username = $1 and status = 'ACTIVE' and due_date < now()`, username).Scan(&overdueLoans); err != nil {
			return err
		}
		if overdueLoans > 0 {
			return errors.Wrapf(errs.ErrOverdueLoans, "user %s has %d overdue loans", username, overdueLoans)
		}

		var pendingFines float64
		if err := tx.QueryRowContext(ctx,
			`select coalesce(sum(amount), 0) from fine where username = $1 and status = 'PENDING'`, username).Scan(&pendingFines); err != nil {
			return err
		}
		if pendingFines > 0 {
			return errors.Wrapf(errs.ErrOutstandingFines, "user %s owes %.2f", username, pendingFines)
		}

		res, err := tx.ExecContext(ctx,
			`update book set available_copies = available_copies - 1 where id = $1 and available_copies > 0`, book.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.Wrapf(errs.ErrBookUnavailable, "book %s", bookUid)
		}

		now := time.Now().UTC()
		q, args, err := qb.Insert(loanTableName).
			Columns("loan_uid", "username", "book_id", "issued_by", "issue_date", "due_date", "status").
			Values(uuid.New(), username, book.ID, issuedBy, now, now.AddDate(0, 0, loanDays), model.LoanActive).
			Suffix("returning id, loan_uid, username, book_id, issued_by, issue_date, due_date, return_date, renewal_count, status, fine_amount, condition_notes").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &loan, q, args...); err != nil {
			if isUniqueViolation(err) {
				return errors.Wrapf(errs.ErrDuplicateLoan, "user %s, book %s", username, bookUid)
			}
			r.log.Error("IssueLoan insert", zap.String("q", q), zap.Error(err))
			return err
		}
		loan.BookUid = bookUid
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func lockLoan(ctx context.Context, tx *sqlx.Tx, loanUid string) (model.Loan, error) {
	var loan model.Loan
	err := tx.GetContext(ctx, &loan, `
		select l.id, l.loan_uid, l.username, l.book_id, b.book_uid, l.issued_by,
			l.issue_date, l.due_date, l.return_date, l.renewal_count, l.status, l.fine_amount, l.condition_notes
		from loan l
		join book b on b.id = l.book_id
		where l.loan_uid = $1
		for update of l`, loanUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "loan %s", loanUid)
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// ReturnLoan finalizes an active loan. A good copy goes back to the
// shelf; damaged and lost copies do not, lost also drops total_copies
// so the ledger keeps matching the physical collection.
func (r *repository) ReturnLoan(ctx context.Context, loanUid string, condition model.Condition, notes string) (model.Loan, *model.Fine, error) {
	var (
		loan model.Loan
		fine *model.Fine
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		l, err := lockLoan(ctx, tx, loanUid)
		if err != nil {
			return err
		}
		if l.Status != model.LoanActive {
			return errors.Wrapf(errs.ErrLoanNotActive, "loan %s is %s", loanUid, l.Status)
		}
		if _, err := lockBook(ctx, tx, l.BookUid); err != nil {
			return err
		}

		now := time.Now().UTC()
		fineAmount := model.OverdueFine(l.DueDate, now)

		status := model.LoanReturned
		switch condition {
		case model.ConditionDamaged:
			status = model.LoanDamaged
		case model.ConditionLost:
			status = model.LoanLost
		}

		update := qb.Update(loanTableName).
			Set("status", status).
			Set("return_date", now).
			Set("fine_amount", fineAmount).
			Where(sq.Eq{"loan_uid": loanUid})
		if notes != "" {
			update = update.Set("condition_notes", notes)
		}
		q, args, err := update.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}

		switch status {
		case model.LoanReturned:
			res, err := tx.ExecContext(ctx,
				`update book set available_copies = available_copies + 1
				 where id = $1 and available_copies < total_copies`, l.BookID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				r.log.Warn("restock skipped, available already at total",
					zap.String("loan_uid", loanUid),
					zap.Int("book_id", l.BookID))
			}
		case model.LoanLost:
			if _, err := tx.ExecContext(ctx,
				`update book set total_copies = greatest(total_copies - 1, 0),
					available_copies = least(available_copies, greatest(total_copies - 1, 0))
				 where id = $1`, l.BookID); err != nil {
				return err
			}
		}

		loan = l
		loan.Status = status
		loan.ReturnDate = &now
		loan.FineAmount = fineAmount
		if notes != "" {
			loan.ConditionNotes = &notes
		}

		if fineAmount > 0 {
			f, err := insertFine(ctx, tx, model.Fine{
				Username: l.Username,
				LoanID:   &l.ID,
				Amount:   fineAmount,
				Reason:   model.ReasonOverdue,
				Status:   model.FinePending,
			})
			if err != nil {
				return err
			}
			f.LoanUid = &l.LoanUid
			fine = &f
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, nil, err
	}
	return loan, fine, nil
}

// RenewLoan extends an active, not yet overdue loan. Copy counts are
// untouched.
func (r *repository) RenewLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	var loan model.Loan
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		l, err := lockLoan(ctx, tx, loanUid)
		if err != nil {
			return err
		}
		if l.Status != model.LoanActive {
			return errors.Wrapf(errs.ErrLoanNotActive, "loan %s is %s", loanUid, l.Status)
		}
		if l.RenewalCount >= model.MaxRenewals {
			return errors.Wrapf(errs.ErrMaxRenewals, "loan %s renewed %d times", loanUid, l.RenewalCount)
		}
		now := time.Now().UTC()
		if now.After(l.DueDate) {
			return errors.Wrapf(errs.ErrLoanOverdue, "loan %s was due %s", loanUid, l.DueDate.Format(time.DateOnly))
		}

		q, args, err := qb.Update(loanTableName).
			Set("due_date", l.DueDate.AddDate(0, 0, model.DefaultLoanDays)).
			Set("renewal_count", l.RenewalCount+1).
			Where(sq.Eq{"loan_uid": loanUid}).
			Suffix("returning id, loan_uid, username, book_id, issued_by, issue_date, due_date, return_date, renewal_count, status, fine_amount, condition_notes").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &loan, q, args...); err != nil {
			return err
		}
		loan.BookUid = l.BookUid
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	var loan model.Loan
	err := r.db.GetContext(ctx, &loan, `
		select `+loanColumns+`
		from loan l
		join book b on b.id = l.book_id
		where l.loan_uid = $1`, loanUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "loan %s", loanUid)
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) ListLoans(ctx context.Context, username string) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.SelectContext(ctx, &loans, `
		select `+loanColumns+`
		from loan l
		join book b on b.id = l.book_id
		where l.username = $1
		order by l.issue_date desc`, username)
	if err != nil {
		return nil, err
	}
	return loans, nil
}
