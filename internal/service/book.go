package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, model.Book{
		Name:        req.Name,
		Author:      req.Author,
		Genre:       req.Genre,
		TotalCopies: req.TotalCopies,
	})
}

func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookUid)
}

func (s *Service) ListBooks(ctx context.Context, page, size int) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, page, size)
}

// AdjustBookStatus applies a manual ledger action. Copies freed by
// mark_available promote waiting reservations, each of which is told
// its book is ready.
func (s *Service) AdjustBookStatus(ctx context.Context, p auth.Profile, bookUid string, req model.AdjustBookStatusRequest) (model.Book, error) {
	book, promoted, err := s.repo.AdjustBookStatus(ctx, bookUid, req.Action, req.AffectedCopies)
	if err != nil {
		return model.Book{}, err
	}
	for _, rsv := range promoted {
		s.notifier.Notify(ctx, rsv.Username, KindReservationReady,
			fmt.Sprintf("Your reserved book is ready for pickup until %s.", rsv.ExpiryDate.Format("2006-01-02")))
	}
	s.log.Info("book status adjusted",
		zap.String("book_uid", bookUid),
		zap.String("action", string(req.Action)),
		zap.Int("affected_copies", req.AffectedCopies),
		zap.Int("promoted", len(promoted)),
		zap.String("by", p.Username))
	return book, nil
}

func (s *Service) RecordAudit(ctx context.Context, p auth.Profile, bookUid string, req model.RecordAuditRequest) (model.InventoryAudit, error) {
	audit, err := s.repo.RecordAudit(ctx, bookUid, p.Username, req)
	if err != nil {
		return model.InventoryAudit{}, err
	}
	s.log.Info("inventory audit recorded",
		zap.String("audit_uid", audit.AuditUid),
		zap.String("book_uid", bookUid),
		zap.Int("discrepancy", audit.Discrepancy),
		zap.String("status", string(audit.Status)))
	return audit, nil
}

func (s *Service) ResolveAudit(ctx context.Context, p auth.Profile, auditUid, notes string) (model.InventoryAudit, error) {
	return s.repo.ResolveAudit(ctx, auditUid, p.Username, notes)
}
