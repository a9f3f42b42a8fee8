package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/errs"
	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
)

// IssueLoan checks the caller-side gates (account status, self-service
// vs staff issuance) and delegates the book-side critical section to
// the repository.
func (s *Service) IssueLoan(ctx context.Context, p auth.Profile, req model.IssueLoanRequest) (model.Loan, error) {
	borrower := req.Username
	if borrower == "" {
		borrower = p.Username
	}
	if borrower != p.Username && !p.IsStaff() {
		return model.Loan{}, errors.Wrap(errs.ErrForbidden, "patrons may only borrow for themselves")
	}
	if borrower == p.Username && p.Status != auth.StatusActive {
		return model.Loan{}, errors.Wrapf(errs.ErrAccountNotActive, "account %s is %s", p.Username, p.Status)
	}

	loanDays := req.LoanDays
	if loanDays == 0 {
		loanDays = model.DefaultLoanDays
	}

	loan, err := s.repo.IssueLoan(ctx, borrower, p.Username, req.BookUid, loanDays)
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("loan issued",
		zap.String("loan_uid", loan.LoanUid),
		zap.String("username", borrower),
		zap.String("book_uid", req.BookUid))
	return loan, nil
}

func (s *Service) ReturnLoan(ctx context.Context, loanUid string, req model.ReturnLoanRequest) (model.ReturnLoanResponse, error) {
	condition := req.Condition
	if condition == "" {
		condition = model.ConditionGood
	}
	loan, fine, err := s.repo.ReturnLoan(ctx, loanUid, condition, req.Notes)
	if err != nil {
		return model.ReturnLoanResponse{}, err
	}
	if fine != nil {
		s.notifier.Notify(ctx, loan.Username, KindFineIssued,
			"An overdue fine of $"+formatAmount(fine.Amount)+" was added to your account.")
	}
	return model.ReturnLoanResponse{Loan: loan, Fine: fine}, nil
}

func (s *Service) RenewLoan(ctx context.Context, p auth.Profile, loanUid string) (model.RenewLoanResponse, error) {
	loan, err := s.repo.GetLoan(ctx, loanUid)
	if err != nil {
		return model.RenewLoanResponse{}, err
	}
	if loan.Username != p.Username && !p.IsStaff() {
		return model.RenewLoanResponse{}, errors.Wrap(errs.ErrForbidden, "not your loan")
	}

	renewed, err := s.repo.RenewLoan(ctx, loanUid)
	if err != nil {
		return model.RenewLoanResponse{}, err
	}
	return model.RenewLoanResponse{
		LoanUid:      renewed.LoanUid,
		DueDate:      renewed.DueDate,
		RenewalCount: renewed.RenewalCount,
	}, nil
}

// ListLoans reports loans with overdue-ness derived at read time.
func (s *Service) ListLoans(ctx context.Context, username string) ([]model.Loan, error) {
	loans, err := s.repo.ListLoans(ctx, username)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range loans {
		loans[i].Status = loans[i].EffectiveStatus(now)
	}
	return loans, nil
}
