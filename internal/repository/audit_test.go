package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
)

const testAuditUid = "c4e81f7a-0d26-4b93-8a57-f10b3d9c2e64"

var (
	bookLoanCountQ = regexp.QuoteMeta(`select count(*) from loan where book_id = $1 and status = 'ACTIVE'`)
	setBookCountsQ = regexp.QuoteMeta(`UPDATE book SET total_copies = $1, available_copies = $2`)
	insertAuditQ   = `INSERT INTO inventory_audit`
	pendingRsvQ    = regexp.QuoteMeta(`select count(*) from reservation where book_id = $1 and status = 'PENDING'`)
)

var auditInsertCols = []string{"id", "audit_uid", "book_id", "audited_by", "expected_count",
	"actual_count", "discrepancy", "status", "notes", "audit_date", "resolved", "resolved_by",
	"resolved_date", "resolved_total_copies", "resolved_available_copies"}

func auditRows(expected, actual, discrepancy int, status model.AuditStatus) *sqlmock.Rows {
	return sqlmock.NewRows(auditInsertCols).
		AddRow(9, testAuditUid, 3, "marge", expected, actual, discrepancy, string(status),
			nil, time.Now().UTC(), false, nil, nil, nil, nil)
}

func TestRepository_RecordAudit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// the shelf count cannot explain away copies that are checked out;
	// the ledger must stay untouched
	t.Run("count below active loans is rejected without mutation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 2))
		mock.ExpectQuery(bookLoanCountQ).WithArgs(3).WillReturnRows(countRows(3))
		mock.ExpectRollback()

		_, err := repo.RecordAudit(ctx, testBookUid, "marge", model.RecordAuditRequest{
			ExpectedCount: 5,
			ActualCount:   2,
		})
		require.ErrorIs(t, err, errs.ErrBelowActiveLoans)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	// counted copies minus loaned-out copies becomes the new available
	t.Run("surplus reconciles both counters", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 2))
		mock.ExpectQuery(bookLoanCountQ).WithArgs(3).WillReturnRows(countRows(3))
		mock.ExpectQuery(setBookCountsQ).WithArgs(6, 3, 3).WillReturnRows(bookRows(3, 6, 3))
		mock.ExpectQuery(insertAuditQ).WillReturnRows(auditRows(5, 6, 1, model.AuditSurplus))
		mock.ExpectCommit()

		audit, err := repo.RecordAudit(ctx, testBookUid, "marge", model.RecordAuditRequest{
			ExpectedCount: 5,
			ActualCount:   6,
		})
		require.NoError(t, err)
		require.Equal(t, model.AuditSurplus, audit.Status)
		require.Equal(t, 1, audit.Discrepancy)
		require.Equal(t, testBookUid, audit.BookUid)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("shortage down to the loaned-out copies warns about the queue", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 2))
		mock.ExpectQuery(bookLoanCountQ).WithArgs(3).WillReturnRows(countRows(3))
		mock.ExpectQuery(setBookCountsQ).WithArgs(3, 0, 3).WillReturnRows(bookRows(3, 3, 0))
		mock.ExpectQuery(pendingRsvQ).WithArgs(3).WillReturnRows(countRows(1))
		mock.ExpectQuery(insertAuditQ).WillReturnRows(auditRows(5, 3, -2, model.AuditShortage))
		mock.ExpectCommit()

		audit, err := repo.RecordAudit(ctx, testBookUid, "marge", model.RecordAuditRequest{
			ExpectedCount: 5,
			ActualCount:   3,
		})
		require.NoError(t, err)
		require.Equal(t, model.AuditShortage, audit.Status)
		require.Equal(t, -2, audit.Discrepancy)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matching count only records the audit", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 2))
		mock.ExpectQuery(insertAuditQ).WillReturnRows(auditRows(5, 5, 0, model.AuditMatch))
		mock.ExpectCommit()

		audit, err := repo.RecordAudit(ctx, testBookUid, "marge", model.RecordAuditRequest{
			ExpectedCount: 5,
			ActualCount:   5,
		})
		require.NoError(t, err)
		require.Equal(t, model.AuditMatch, audit.Status)
		require.Zero(t, audit.Discrepancy)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
