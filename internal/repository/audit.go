package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
)

const auditColumns = `a.id, a.audit_uid, a.book_id, b.book_uid, a.audited_by, a.expected_count,
	a.actual_count, a.discrepancy, a.status, a.notes, a.audit_date, a.resolved, a.resolved_by,
	a.resolved_date, a.resolved_total_copies, a.resolved_available_copies`

// RecordAudit reconciles the ledger with a physical shelf count. A
// count below the number of legitimately checked-out copies is a
// miscount, not a correction, and is rejected without mutation.
func (r *repository) RecordAudit(ctx context.Context, bookUid, auditedBy string, req model.RecordAuditRequest) (model.InventoryAudit, error) {
	var audit model.InventoryAudit
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		book, err := lockBook(ctx, tx, bookUid)
		if err != nil {
			return err
		}

		discrepancy := req.ActualCount - req.ExpectedCount
		status := model.DeriveAuditStatus(discrepancy)

		if discrepancy != 0 {
			loans, err := activeLoanCount(ctx, tx, book.ID)
			if err != nil {
				return err
			}
			if req.ActualCount < loans {
				return errors.Wrapf(errs.ErrBelowActiveLoans,
					"book %s: counted %d but %d copies are on loan", bookUid, req.ActualCount, loans)
			}
			available := req.ActualCount - loans
			if available < 0 {
				available = 0
			}
			if _, err := setBookCounts(ctx, tx, book.ID, req.ActualCount, available); err != nil {
				return err
			}
			if available == 0 {
				pending, err := pendingReservationCount(ctx, tx, book.ID)
				if err != nil {
					return err
				}
				if pending > 0 {
					r.log.Warn("audit left no available copies for pending reservations",
						zap.String("book_uid", bookUid),
						zap.Int("pending_reservations", pending),
						zap.Int("actual_count", req.ActualCount))
				}
			}
		}

		insert := qb.Insert(auditTableName).
			Columns("audit_uid", "book_id", "audited_by", "expected_count", "actual_count", "discrepancy", "status", "notes").
			Values(uuid.New(), book.ID, auditedBy, req.ExpectedCount, req.ActualCount, discrepancy, status, nullable(req.Notes)).
			Suffix(`returning id, audit_uid, book_id, audited_by, expected_count, actual_count,
				discrepancy, status, notes, audit_date, resolved, resolved_by, resolved_date,
				resolved_total_copies, resolved_available_copies`)
		q, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &audit, q, args...); err != nil {
			return err
		}
		audit.BookUid = bookUid
		return nil
	})
	if err != nil {
		return model.InventoryAudit{}, err
	}
	return audit, nil
}

// ResolveAudit records staff sign-off and a snapshot of the book's
// counters at that moment. It never mutates the counters and refuses
// to sign off twice.
func (r *repository) ResolveAudit(ctx context.Context, auditUid, resolvedBy, notes string) (model.InventoryAudit, error) {
	var audit model.InventoryAudit
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var cur model.InventoryAudit
		err := tx.GetContext(ctx, &cur, `
			select `+auditColumns+`
			from inventory_audit a
			join book b on b.id = a.book_id
			where a.audit_uid = $1
			for update of a`, auditUid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrapf(errs.ErrNotFound, "audit %s", auditUid)
			}
			return err
		}
		if cur.Resolved {
			return errors.Wrapf(errs.ErrAlreadyResolved, "audit %s", auditUid)
		}

		book, err := lockBook(ctx, tx, cur.BookUid)
		if err != nil {
			return err
		}

		update := qb.Update(auditTableName).
			Set("resolved", true).
			Set("resolved_by", resolvedBy).
			Set("resolved_date", time.Now().UTC()).
			Set("resolved_total_copies", book.TotalCopies).
			Set("resolved_available_copies", book.AvailableCopies).
			Where(sq.Eq{"id": cur.ID}).
			Suffix(`returning id, audit_uid, book_id, audited_by, expected_count, actual_count,
				discrepancy, status, notes, audit_date, resolved, resolved_by, resolved_date,
				resolved_total_copies, resolved_available_copies`)
		if notes != "" {
			update = update.Set("notes", notes)
		}
		q, args, err := update.ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &audit, q, args...); err != nil {
			return err
		}
		audit.BookUid = cur.BookUid
		return nil
	})
	if err != nil {
		return model.InventoryAudit{}, err
	}
	return audit, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
