package model

import (
	"math"
	"time"
)

// Policy defaults. Overridable through config where it matters.
const (
	DefaultLoanDays      = 14
	MaxRenewals          = 2
	BorrowLimit          = 5
	FinePerDay           = 0.50
	ReservationReadyDays = 7
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	// LoanOverdue is part of the stored enum but the engine never
	// writes it; overdue-ness is derived from due_date on read.
	LoanOverdue LoanStatus = "OVERDUE"
	LoanLost    LoanStatus = "LOST"
	LoanDamaged LoanStatus = "DAMAGED"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationReady     ReservationStatus = "READY"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationExpired   ReservationStatus = "EXPIRED"
)

type FineStatus string

const (
	FinePending   FineStatus = "PENDING"
	FinePaid      FineStatus = "PAID"
	FinePartial   FineStatus = "PARTIAL"
	FineWaived    FineStatus = "WAIVED"
	FineCancelled FineStatus = "CANCELLED"
)

type FineReason string

const (
	ReasonOverdue     FineReason = "OVERDUE"
	ReasonDamage      FineReason = "DAMAGE"
	ReasonLost        FineReason = "LOST"
	ReasonReplacement FineReason = "REPLACEMENT"
	ReasonOther       FineReason = "OTHER"
)

type AuditStatus string

const (
	AuditMatch    AuditStatus = "MATCH"
	AuditShortage AuditStatus = "SHORTAGE"
	AuditSurplus  AuditStatus = "SURPLUS"
	// manual override only, never auto-derived
	AuditDamaged AuditStatus = "DAMAGED"
	AuditMissing AuditStatus = "MISSING"
)

type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionDamaged Condition = "damaged"
	ConditionLost    Condition = "lost"
)

type BookAction string

const (
	ActionMarkLost      BookAction = "mark_lost"
	ActionMarkDamaged   BookAction = "mark_damaged"
	ActionMarkAvailable BookAction = "mark_available"
	ActionAdjustCopies  BookAction = "adjust_copies"
)

type Book struct {
	ID              int    `json:"-" db:"id"`
	BookUid         string `json:"bookUid" db:"book_uid"`
	Name            string `json:"name" db:"name"`
	Author          string `json:"author" db:"author"`
	Genre           string `json:"genre" db:"genre"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type Loan struct {
	ID             int        `json:"-" db:"id"`
	LoanUid        string     `json:"loanUid" db:"loan_uid"`
	Username       string     `json:"username" db:"username"`
	BookID         int        `json:"-" db:"book_id"`
	BookUid        string     `json:"bookUid" db:"book_uid"`
	IssuedBy       string     `json:"issuedBy" db:"issued_by"`
	IssueDate      time.Time  `json:"issueDate" db:"issue_date"`
	DueDate        time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate     *time.Time `json:"returnDate,omitempty" db:"return_date"`
	RenewalCount   int        `json:"renewalCount" db:"renewal_count"`
	Status         LoanStatus `json:"status" db:"status"`
	FineAmount     float64    `json:"fineAmount" db:"fine_amount"`
	ConditionNotes *string    `json:"conditionNotes,omitempty" db:"condition_notes"`
}

// IsOverdue derives the overdue condition; the enum value is never
// stored by the engine.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanActive && now.After(l.DueDate)
}

// EffectiveStatus is what callers see: an active loan past its due
// date reads as OVERDUE.
func (l Loan) EffectiveStatus(now time.Time) LoanStatus {
	if l.IsOverdue(now) {
		return LoanOverdue
	}
	return l.Status
}

// OverdueFine charges FinePerDay per started day past due.
// A partial day rounds up to a full day's fine.
func OverdueFine(dueDate, returnDate time.Time) float64 {
	late := returnDate.Sub(dueDate)
	if late <= 0 {
		return 0
	}
	days := math.Ceil(late.Hours() / 24)
	return days * FinePerDay
}

type Reservation struct {
	ID             int               `json:"-" db:"id"`
	ReservationUid string            `json:"reservationUid" db:"reservation_uid"`
	Username       string            `json:"username" db:"username"`
	BookID         int               `json:"-" db:"book_id"`
	BookUid        string            `json:"bookUid" db:"book_uid"`
	RequestDate    time.Time         `json:"requestDate" db:"request_date"`
	Status         ReservationStatus `json:"status" db:"status"`
	Priority       int               `json:"priority" db:"priority"`
	ExpiryDate     *time.Time        `json:"expiryDate,omitempty" db:"expiry_date"`
}

// IsExpired reports whether a READY reservation sat past its pickup
// window. Expiry is detected lazily on read, there is no sweeper.
func (r Reservation) IsExpired(now time.Time) bool {
	return r.Status == ReservationReady && r.ExpiryDate != nil && now.After(*r.ExpiryDate)
}

// ValidTransition covers the staff/patron driven part of the
// reservation state machine. READY is entered via promotion, which
// also stamps the expiry date.
func ValidTransition(from, to ReservationStatus) bool {
	switch to {
	case ReservationReady:
		return from == ReservationPending
	case ReservationFulfilled:
		return from == ReservationReady
	case ReservationCancelled:
		return from == ReservationPending || from == ReservationReady
	case ReservationExpired:
		return from == ReservationReady
	default:
		return false
	}
}

type Fine struct {
	ID           int        `json:"-" db:"id"`
	FineUid      string     `json:"fineUid" db:"fine_uid"`
	Username     string     `json:"username" db:"username"`
	LoanID       *int       `json:"-" db:"loan_id"`
	LoanUid      *string    `json:"loanUid,omitempty" db:"loan_uid"`
	Amount       float64    `json:"amount" db:"amount"`
	Reason       FineReason `json:"reason" db:"reason"`
	Status       FineStatus `json:"status" db:"status"`
	PaidAmount   float64    `json:"paidAmount" db:"paid_amount"`
	DatePaid     *time.Time `json:"datePaid,omitempty" db:"date_paid"`
	WaivedBy     *string    `json:"waivedBy,omitempty" db:"waived_by"`
	WaivedReason *string    `json:"waivedReason,omitempty" db:"waived_reason"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type InventoryAudit struct {
	ID            int         `json:"-" db:"id"`
	AuditUid      string      `json:"auditUid" db:"audit_uid"`
	BookID        int         `json:"-" db:"book_id"`
	BookUid       string      `json:"bookUid" db:"book_uid"`
	AuditedBy     string      `json:"auditedBy" db:"audited_by"`
	ExpectedCount int         `json:"expectedCount" db:"expected_count"`
	ActualCount   int         `json:"actualCount" db:"actual_count"`
	Discrepancy   int         `json:"discrepancy" db:"discrepancy"`
	Status        AuditStatus `json:"status" db:"status"`
	Notes         *string     `json:"notes,omitempty" db:"notes"`
	AuditDate     time.Time   `json:"auditDate" db:"audit_date"`
	Resolved      bool        `json:"resolved" db:"resolved"`
	ResolvedBy    *string     `json:"resolvedBy,omitempty" db:"resolved_by"`
	ResolvedDate  *time.Time  `json:"resolvedDate,omitempty" db:"resolved_date"`
	// book snapshot captured at sign-off
	ResolvedTotalCopies     *int `json:"resolvedTotalCopies,omitempty" db:"resolved_total_copies"`
	ResolvedAvailableCopies *int `json:"resolvedAvailableCopies,omitempty" db:"resolved_available_copies"`
}

// DeriveAuditStatus classifies a count discrepancy by sign.
func DeriveAuditStatus(discrepancy int) AuditStatus {
	switch {
	case discrepancy < 0:
		return AuditShortage
	case discrepancy > 0:
		return AuditSurplus
	default:
		return AuditMatch
	}
}
