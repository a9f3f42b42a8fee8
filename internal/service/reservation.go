package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
)

func (s *Service) CreateReservation(ctx context.Context, p auth.Profile, req model.CreateReservationRequest) (model.Reservation, error) {
	if p.Status != auth.StatusActive {
		return model.Reservation{}, errors.Wrapf(errs.ErrAccountNotActive, "account %s is %s", p.Username, p.Status)
	}
	rsv, err := s.repo.CreateReservation(ctx, p.Username, req.BookUid)
	if err != nil {
		return model.Reservation{}, err
	}
	s.notifier.Notify(ctx, rsv.Username, KindReservationPending,
		fmt.Sprintf("You are number %d in the queue for this title.", rsv.Priority))
	return rsv, nil
}

// ListReservations applies lazy expiry; each newly expired entry gets
// its single expiry notification here.
func (s *Service) ListReservations(ctx context.Context, username string) ([]model.Reservation, error) {
	items, expired, err := s.repo.ListReservations(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, rsv := range expired {
		s.notifier.Notify(ctx, rsv.Username, KindReservationExpired,
			"Your reservation expired before pickup and was released.")
	}
	return items, nil
}

// TransitionReservation drives staff transitions and patron
// cancellations. Patrons may only touch their own reservations and
// only to cancel them.
func (s *Service) TransitionReservation(ctx context.Context, p auth.Profile, reservationUid string, req model.TransitionReservationRequest) (model.Reservation, error) {
	if !p.IsStaff() {
		if req.Status != model.ReservationCancelled {
			return model.Reservation{}, errors.Wrapf(errs.ErrForbidden, "patrons may only cancel")
		}
		cur, err := s.repo.GetReservation(ctx, reservationUid)
		if err != nil {
			return model.Reservation{}, err
		}
		if cur.Username != p.Username {
			return model.Reservation{}, errors.Wrap(errs.ErrForbidden, "not your reservation")
		}
	}

	rsv, err := s.repo.TransitionReservation(ctx, reservationUid, req.Status)
	if err != nil {
		// expiry detected mid-transition is still a patron-visible
		// transition and gets its one notification
		if errors.Is(err, errs.ErrReservationExpired) && rsv.Username != "" {
			s.notifier.Notify(ctx, rsv.Username, KindReservationExpired,
				"Your reservation expired before pickup and was released.")
		}
		return model.Reservation{}, err
	}

	switch rsv.Status {
	case model.ReservationReady:
		s.notifier.Notify(ctx, rsv.Username, KindReservationReady,
			fmt.Sprintf("Your reserved book is ready for pickup until %s.", rsv.ExpiryDate.Format("2006-01-02")))
	case model.ReservationFulfilled:
		s.notifier.Notify(ctx, rsv.Username, KindReservationFulfilled,
			"Your reservation has been fulfilled. Enjoy the book!")
	case model.ReservationCancelled:
		s.notifier.Notify(ctx, rsv.Username, KindReservationCancelled,
			"Your reservation was cancelled.")
	}

	s.log.Info("reservation transition",
		zap.String("reservation_uid", reservationUid),
		zap.String("status", string(rsv.Status)),
		zap.String("by", p.Username))
	return rsv, nil
}
