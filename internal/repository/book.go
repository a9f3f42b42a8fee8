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

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q, args, err := qb.Insert(bookTableName).
		Columns("book_uid", "name", "author", "genre", "total_copies", "available_copies").
		Values(uuid.New(), book.Name, book.Author, book.Genre, book.TotalCopies, book.TotalCopies).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return b, nil
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	q, args, err := qb.Select("id", "book_uid", "name", "author", "genre", "total_copies", "available_copies").
		From(bookTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrapf(errs.ErrNotFound, "book %s", bookUid)
		}
		return model.Book{}, err
	}
	return b, nil
}

func (r *repository) ListBooks(ctx context.Context, page, size int) ([]model.Book, error) {
	q := qb.Select("id", "book_uid", "name", "author", "genre", "total_copies", "available_copies").
		From(bookTableName).
		OrderBy("name")
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// lockBook pins the book row for the rest of the transaction. All
// copy-counter mutations start here.
func lockBook(ctx context.Context, tx *sqlx.Tx, bookUid string) (model.Book, error) {
	q, args, err := qb.Select("id", "book_uid", "name", "author", "genre", "total_copies", "available_copies").
		From(bookTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := tx.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrapf(errs.ErrNotFound, "book %s", bookUid)
		}
		return model.Book{}, err
	}
	return b, nil
}

func setBookCounts(ctx context.Context, tx *sqlx.Tx, bookID, total, available int) (model.Book, error) {
	q, args, err := qb.Update(bookTableName).
		Set("total_copies", total).
		Set("available_copies", available).
		Where(sq.Eq{"id": bookID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := tx.GetContext(ctx, &b, q, args...); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func activeLoanCount(ctx context.Context, tx *sqlx.Tx, bookID int) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx,
		`select count(*) from loan where book_id = $1 and status = 'ACTIVE'`, bookID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func pendingReservationCount(ctx context.Context, tx *sqlx.Tx, bookID int) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx,
		`select count(*) from reservation where book_id = $1 and status = 'PENDING'`, bookID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustBookStatus applies a manual copy-count action under the book
// row lock. mark_available may free copies for waiting reservations;
// those are promoted to READY in strict priority order and returned so
// the caller can notify their owners.
func (r *repository) AdjustBookStatus(ctx context.Context, bookUid string, action model.BookAction, affectedCopies int) (model.Book, []model.Reservation, error) {
	var (
		book     model.Book
		promoted []model.Reservation
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		b, err := lockBook(ctx, tx, bookUid)
		if err != nil {
			return err
		}

		total, available := b.TotalCopies, b.AvailableCopies
		switch action {
		case model.ActionMarkLost:
			total -= affectedCopies
			if total < 0 {
				total = 0
			}
			available -= affectedCopies
			if available < 0 {
				available = 0
			}
			loans, err := activeLoanCount(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if total < loans {
				return errors.Wrapf(errs.ErrLoanConflict,
					"book %s has %d active loans, cannot reduce total to %d", bookUid, loans, total)
			}
		case model.ActionMarkDamaged:
			available -= affectedCopies
			if available < 0 {
				available = 0
			}
		case model.ActionMarkAvailable:
			available += affectedCopies
			if available > total {
				return errors.Wrapf(errs.ErrCopiesExceedTotal,
					"book %s: %d available over %d total", bookUid, available, total)
			}
		case model.ActionAdjustCopies:
			total = affectedCopies
			loans, err := activeLoanCount(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if total < loans {
				return errors.Wrapf(errs.ErrLoanConflict,
					"book %s has %d active loans, cannot reduce total to %d", bookUid, loans, total)
			}
			if available > total {
				available = total
			}
		default:
			return errors.Wrapf(errs.ErrInvalidAction, "%s", action)
		}

		if total == 0 && (action == model.ActionMarkLost || action == model.ActionAdjustCopies) {
			pending, err := pendingReservationCount(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if pending > 0 {
				return errors.Wrapf(errs.ErrReservationConflict,
					"book %s has %d pending reservations", bookUid, pending)
			}
		}

		if book, err = setBookCounts(ctx, tx, b.ID, total, available); err != nil {
			return err
		}

		if action == model.ActionMarkAvailable && affectedCopies > 0 {
			if promoted, err = promotePending(ctx, tx, b.ID, affectedCopies, time.Now().UTC()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Book{}, nil, err
	}
	return book, promoted, nil
}
