package repository_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
)

const testReservationUid = "2b6a0c9d-7e15-4f02-8d3a-9f41c5b7e6a8"

var (
	insertReservationQ = regexp.QuoteMeta(`insert into reservation`)
	lockReservationQ   = regexp.QuoteMeta(`for update of r`)
	expireReservationQ = regexp.QuoteMeta(`update reservation set status = 'EXPIRED' where id = $1`)
)

var reservationCols = []string{"id", "reservation_uid", "username", "book_id", "book_uid",
	"request_date", "status", "priority", "expiry_date"}

func TestRepository_CreateReservation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("queued at next priority", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		now := time.Now().UTC()

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 0))
		mock.ExpectQuery(insertReservationQ).WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_uid", "username", "book_id", "request_date", "status", "priority", "expiry_date",
		}).AddRow(5, testReservationUid, "alice", 3, now, "PENDING", 2, nil))
		mock.ExpectCommit()

		rsv, err := repo.CreateReservation(ctx, "alice", testBookUid)
		require.NoError(t, err)
		require.Equal(t, model.ReservationPending, rsv.Status)
		require.Equal(t, 2, rsv.Priority)
		require.Equal(t, testBookUid, rsv.BookUid)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("copies on the shelf reject the queue", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 1))
		mock.ExpectRollback()

		_, err := repo.CreateReservation(ctx, "alice", testBookUid)
		require.ErrorIs(t, err, errs.ErrBookAvailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second live reservation for the same book", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 0))
		mock.ExpectQuery(insertReservationQ).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
		mock.ExpectRollback()

		_, err := repo.CreateReservation(ctx, "alice", testBookUid)
		require.ErrorIs(t, err, errs.ErrDuplicateReservation)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_TransitionReservation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	lockedRows := func(status model.ReservationStatus, expiry *time.Time) *sqlmock.Rows {
		var exp driver.Value
		if expiry != nil {
			exp = *expiry
		}
		return sqlmock.NewRows(reservationCols).
			AddRow(5, testReservationUid, "bob", 3, testBookUid,
				time.Now().UTC().AddDate(0, 0, -10), string(status), 1, exp)
	}

	// the reclassification to EXPIRED must commit even though the
	// requested transition fails, and the row must come back so the
	// caller can notify its owner
	t.Run("lapsed pickup window is reclassified and committed", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		lapsed := time.Now().UTC().AddDate(0, 0, -1)

		mock.ExpectBegin()
		mock.ExpectQuery(lockReservationQ).WithArgs(testReservationUid).
			WillReturnRows(lockedRows(model.ReservationReady, &lapsed))
		mock.ExpectExec(expireReservationQ).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rsv, err := repo.TransitionReservation(ctx, testReservationUid, model.ReservationFulfilled)
		require.ErrorIs(t, err, errs.ErrReservationExpired)
		require.Equal(t, model.ReservationExpired, rsv.Status)
		require.Equal(t, "bob", rsv.Username)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fulfill loses the last copy to a concurrent issue", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		expiry := time.Now().UTC().AddDate(0, 0, 3)

		mock.ExpectBegin()
		mock.ExpectQuery(lockReservationQ).WithArgs(testReservationUid).
			WillReturnRows(lockedRows(model.ReservationReady, &expiry))
		mock.ExpectQuery(lockBookQ).WithArgs(testBookUid).WillReturnRows(bookRows(3, 5, 1))
		mock.ExpectExec(takeCopyQ).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.TransitionReservation(ctx, testReservationUid, model.ReservationFulfilled)
		require.ErrorIs(t, err, errs.ErrBookUnavailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending cannot be fulfilled", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockReservationQ).WithArgs(testReservationUid).
			WillReturnRows(lockedRows(model.ReservationPending, nil))
		mock.ExpectRollback()

		_, err := repo.TransitionReservation(ctx, testReservationUid, model.ReservationFulfilled)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
