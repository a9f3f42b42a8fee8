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

const reservationColumns = `r.id, r.reservation_uid, r.username, r.book_id, b.book_uid,
	r.request_date, r.status, r.priority, r.expiry_date`

// CreateReservation queues a patron for an unavailable book. The book
// row lock serializes concurrent requests, so the per-book priority
// sequence never produces duplicates.
func (r *repository) CreateReservation(ctx context.Context, username, bookUid string) (model.Reservation, error) {
	var rsv model.Reservation
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		book, err := lockBook(ctx, tx, bookUid)
		if err != nil {
			return err
		}
		if book.AvailableCopies > 0 {
			return errors.Wrapf(errs.ErrBookAvailable,
				"book %s has %d available copies", bookUid, book.AvailableCopies)
		}

		q := `
		insert into reservation (reservation_uid, username, book_id, request_date, status, priority)
		values ($1, $2, $3, $4, 'PENDING',
			(select coalesce(max(priority), 0) + 1 from reservation where book_id = $3))
		returning id, reservation_uid, username, book_id, request_date, status, priority, expiry_date`
		if err := tx.GetContext(ctx, &rsv, q, uuid.New(), username, book.ID, time.Now().UTC()); err != nil {
			if isUniqueViolation(err) {
				return errors.Wrapf(errs.ErrDuplicateReservation, "user %s, book %s", username, bookUid)
			}
			r.log.Error("CreateReservation", zap.String("q", q), zap.Error(err))
			return err
		}
		rsv.BookUid = bookUid
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	var rsv model.Reservation
	err := r.db.GetContext(ctx, &rsv, `
		select `+reservationColumns+`
		from reservation r
		join book b on b.id = r.book_id
		where r.reservation_uid = $1`, reservationUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "reservation %s", reservationUid)
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

// ListReservations returns the user's reservations after lazily
// reclassifying READY entries whose pickup window has passed. Newly
// expired entries are returned separately so each gets exactly one
// notification.
func (r *repository) ListReservations(ctx context.Context, username string) ([]model.Reservation, []model.Reservation, error) {
	var (
		items   []model.Reservation
		expired []model.Reservation
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &expired, `
			update reservation r
			set status = 'EXPIRED'
			from book b
			where b.id = r.book_id and r.username = $1
				and r.status = 'READY' and r.expiry_date < now()
			returning `+reservationColumns, username); err != nil {
			return err
		}
		return tx.SelectContext(ctx, &items, `
			select `+reservationColumns+`
			from reservation r
			join book b on b.id = r.book_id
			where r.username = $1
			order by r.request_date desc`, username)
	})
	if err != nil {
		return nil, nil, err
	}
	return items, expired, nil
}

func lockReservation(ctx context.Context, tx *sqlx.Tx, reservationUid string) (model.Reservation, error) {
	var rsv model.Reservation
	err := tx.GetContext(ctx, &rsv, `
		select `+reservationColumns+`
		from reservation r
		join book b on b.id = r.book_id
		where r.reservation_uid = $1
		for update of r`, reservationUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "reservation %s", reservationUid)
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

// TransitionReservation drives the staff/patron visible part of the
// state machine. Expiry is re-validated at use time: a READY entry
// past its window is reclassified here rather than fulfilled. The
// reclassification commits even though the requested transition fails,
// and the expired row comes back with the sentinel so the caller can
// notify its owner.
func (r *repository) TransitionReservation(ctx context.Context, reservationUid string, to model.ReservationStatus) (model.Reservation, error) {
	var (
		rsv     model.Reservation
		expired bool
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		cur, err := lockReservation(ctx, tx, reservationUid)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if cur.IsExpired(now) {
			if _, err := tx.ExecContext(ctx,
				`update reservation set status = 'EXPIRED' where id = $1`, cur.ID); err != nil {
				return err
			}
			cur.Status = model.ReservationExpired
			rsv = cur
			expired = true
			return nil
		}
		if !model.ValidTransition(cur.Status, to) {
			return errors.Wrapf(errs.ErrInvalidTransition, "%s -> %s", cur.Status, to)
		}

		update := qb.Update(reservationTableName).
			Set("status", to).
			Where(sq.Eq{"id": cur.ID}).
			Suffix("returning id, reservation_uid, username, book_id, request_date, status, priority, expiry_date")

		switch to {
		case model.ReservationReady:
			update = update.Set("expiry_date", now.AddDate(0, 0, model.ReservationReadyDays))
		case model.ReservationFulfilled:
			// the patron takes a copy home
			if _, err := lockBook(ctx, tx, cur.BookUid); err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				`update book set available_copies = available_copies - 1
				 where id = $1 and available_copies > 0`, cur.BookID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return errors.Wrapf(errs.ErrBookUnavailable, "book %s", cur.BookUid)
			}
		}

		q, args, err := update.ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &rsv, q, args...); err != nil {
			return err
		}
		rsv.BookUid = cur.BookUid
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	if expired {
		return rsv, errors.Wrapf(errs.ErrReservationExpired,
			"reservation %s expired %s", reservationUid, rsv.ExpiryDate.Format(time.DateOnly))
	}
	return rsv, nil
}

// promotePending moves up to freed pending reservations to READY in
// strict priority order. Caller holds the book row lock.
func promotePending(ctx context.Context, tx *sqlx.Tx, bookID, freed int, now time.Time) ([]model.Reservation, error) {
	var promoted []model.Reservation
	err := tx.SelectContext(ctx, &promoted, `
		update reservation r
		set status = 'READY', expiry_date = $3
		from book b
		where b.id = r.book_id and r.id in (
			select id from reservation
			where book_id = $1 and status = 'PENDING'
			order by priority asc
			limit $2
			for update skip locked
		)
		returning `+reservationColumns,
		bookID, freed, now.AddDate(0, 0, model.ReservationReadyDays))
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
