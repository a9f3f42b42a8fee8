package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
)

const fineColumns = `f.id, f.fine_uid, f.username, f.loan_id, l.loan_uid, f.amount, f.reason,
	f.status, f.paid_amount, f.date_paid, f.waived_by, f.waived_reason, f.notes, f.created_at`

func insertFine(ctx context.Context, tx *sqlx.Tx, fine model.Fine) (model.Fine, error) {
	q, args, err := qb.Insert(fineTableName).
		Columns("fine_uid", "username", "loan_id", "amount", "reason", "status", "notes").
		Values(uuid.New(), fine.Username, fine.LoanID, fine.Amount, fine.Reason, model.FinePending, fine.Notes).
		Suffix(`returning id, fine_uid, username, loan_id, amount, reason, status,
			paid_amount, date_paid, waived_by, waived_reason, notes, created_at`).
		ToSql()
	if err != nil {
		return model.Fine{}, err
	}
	var f model.Fine
	if err := tx.GetContext(ctx, &f, q, args...); err != nil {
		return model.Fine{}, err
	}
	return f, nil
}

func (r *repository) CreateFine(ctx context.Context, fine model.Fine) (model.Fine, error) {
	var created model.Fine
	err := r.inTx(ctx, func(tx *sqlx.Tx) (err error) {
		created, err = insertFine(ctx, tx, fine)
		return err
	})
	if err != nil {
		return model.Fine{}, err
	}
	created.LoanUid = fine.LoanUid
	return created, nil
}

// ResolveFine settles a pending fine. Waiving wins over whatever
// target status was requested and records who waived it and why.
func (r *repository) ResolveFine(ctx context.Context, fineUid string, req model.ResolveFineRequest, resolvedBy string) (model.Fine, error) {
	var fine model.Fine
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var cur model.Fine
		err := tx.GetContext(ctx, &cur, `
			select f.id, f.fine_uid, f.username, f.loan_id, f.amount, f.reason, f.status,
				f.paid_amount, f.date_paid, f.waived_by, f.waived_reason, f.notes, f.created_at
			from fine f
			where f.fine_uid = $1
			for update`, fineUid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrapf(errs.ErrNotFound, "fine %s", fineUid)
			}
			return err
		}
		if cur.Status != model.FinePending {
			return errors.Wrapf(errs.ErrFineResolved, "fine %s is %s", fineUid, cur.Status)
		}

		now := time.Now().UTC()
		status := req.Status
		update := qb.Update(fineTableName).Where(sq.Eq{"id": cur.ID})

		if req.WaivedReason != "" || status == model.FineWaived {
			// waiver overrides the requested status
			status = model.FineWaived
			update = update.
				Set("waived_by", resolvedBy).
				Set("waived_reason", req.WaivedReason)
		}

		switch status {
		case model.FinePaid, model.FinePartial:
			paid := req.PaidAmount
			if paid == 0 {
				paid = cur.Amount
			}
			if status == model.FinePaid && paid < cur.Amount {
				status = model.FinePartial
			}
			update = update.Set("paid_amount", paid).Set("date_paid", now)
		}

		q, args, err := update.
			Set("status", status).
			Suffix(`returning id, fine_uid, username, loan_id, amount, reason, status,
				paid_amount, date_paid, waived_by, waived_reason, notes, created_at`).
			ToSql()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &fine, q, args...)
	})
	if err != nil {
		return model.Fine{}, err
	}
	return fine, nil
}

func (r *repository) ListFines(ctx context.Context, username string) ([]model.Fine, error) {
	var fines []model.Fine
	err := r.db.SelectContext(ctx, &fines, `
		select `+fineColumns+`
		from fine f
		left join loan l on l.id = f.loan_id
		where f.username = $1
		order by f.created_at desc`, username)
	if err != nil {
		return nil, err
	}
	return fines, nil
}

// PendingFineTotal is the amount gating new loans for a user. Paid,
// waived and cancelled fines do not count.
func (r *repository) PendingFineTotal(ctx context.Context, username string) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx,
		`select coalesce(sum(amount), 0) from fine where username = $1 and status = 'PENDING'`, username).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
