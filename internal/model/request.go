package model

import "time"

// Request/response shapes bound and validated at the transport edge.
// Every operation enters the state machine strongly typed.

type CreateBookRequest struct {
	Name        string `json:"name" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre"`
	TotalCopies int    `json:"totalCopies" validate:"gte=0"`
}

type IssueLoanRequest struct {
	BookUid string `json:"bookUid" validate:"required,uuid"`
	// staff may issue on behalf of a borrower; empty means self-service
	Username string `json:"username"`
	LoanDays int    `json:"loanDays" validate:"gte=0,lte=90"`
}

type ReturnLoanRequest struct {
	Condition Condition `json:"condition" validate:"omitempty,oneof=good damaged lost"`
	Notes     string    `json:"notes"`
}

type ReturnLoanResponse struct {
	Loan Loan  `json:"loan"`
	Fine *Fine `json:"fine,omitempty"`
}

type RenewLoanResponse struct {
	LoanUid      string    `json:"loanUid"`
	DueDate      time.Time `json:"dueDate"`
	RenewalCount int       `json:"renewalCount"`
}

type CreateReservationRequest struct {
	BookUid string `json:"bookUid" validate:"required,uuid"`
}

type TransitionReservationRequest struct {
	Status ReservationStatus `json:"status" validate:"required,oneof=READY FULFILLED CANCELLED"`
	Notes  string            `json:"notes"`
}

type CreateFineRequest struct {
	Username string     `json:"username" validate:"required"`
	Amount   float64    `json:"amount" validate:"required,gt=0"`
	Reason   FineReason `json:"reason" validate:"required,oneof=OVERDUE DAMAGE LOST REPLACEMENT OTHER"`
	LoanUid  string     `json:"loanUid" validate:"omitempty,uuid"`
	Notes    string     `json:"notes"`
}

type ResolveFineRequest struct {
	Status       FineStatus `json:"status" validate:"required,oneof=PAID PARTIAL WAIVED CANCELLED"`
	PaidAmount   float64    `json:"paidAmount" validate:"gte=0"`
	WaivedReason string     `json:"waivedReason"`
}

type RecordAuditRequest struct {
	ExpectedCount int    `json:"expectedCount" validate:"gte=0"`
	ActualCount   int    `json:"actualCount" validate:"gte=0"`
	Notes         string `json:"notes"`
}

type ResolveAuditRequest struct {
	Notes string `json:"notes"`
}

type AdjustBookStatusRequest struct {
	Action         BookAction `json:"action" validate:"required,oneof=mark_lost mark_damaged mark_available adjust_copies"`
	AffectedCopies int        `json:"affectedCopies" validate:"gte=0"`
	Notes          string     `json:"notes"`
}
