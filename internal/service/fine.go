package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
)

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// CreateFine records a manual fine (damage, replacement and the like).
// Overdue fines are created by the return path, not here.
func (s *Service) CreateFine(ctx context.Context, p auth.Profile, req model.CreateFineRequest) (model.Fine, error) {
	fine := model.Fine{
		Username: req.Username,
		Amount:   req.Amount,
		Reason:   req.Reason,
		Status:   model.FinePending,
	}
	if req.Notes != "" {
		notes := req.Notes
		fine.Notes = &notes
	}
	if req.LoanUid != "" {
		loan, err := s.repo.GetLoan(ctx, req.LoanUid)
		if err != nil {
			return model.Fine{}, err
		}
		fine.LoanID = &loan.ID
		fine.LoanUid = &loan.LoanUid
	}

	created, err := s.repo.CreateFine(ctx, fine)
	if err != nil {
		return model.Fine{}, err
	}
	s.notifier.Notify(ctx, created.Username, KindFineIssued,
		fmt.Sprintf("A fine of $%s (%s) was added to your account.", formatAmount(created.Amount), created.Reason))
	s.log.Info("fine created",
		zap.String("fine_uid", created.FineUid),
		zap.String("username", created.Username),
		zap.Float64("amount", created.Amount),
		zap.String("by", p.Username))
	return created, nil
}

func (s *Service) ResolveFine(ctx context.Context, p auth.Profile, fineUid string, req model.ResolveFineRequest) (model.Fine, error) {
	fine, err := s.repo.ResolveFine(ctx, fineUid, req, p.Username)
	if err != nil {
		return model.Fine{}, err
	}
	s.notifier.Notify(ctx, fine.Username, KindFineResolved,
		fmt.Sprintf("Your fine of $%s is now %s.", formatAmount(fine.Amount), fine.Status))
	return fine, nil
}

func (s *Service) ListFines(ctx context.Context, username string) ([]model.Fine, error) {
	return s.repo.ListFines(ctx, username)
}
