package domain

import (
	"strconv"
	"strings"
	"time"
)

// PaymentMethod is how a payment was settled.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodCash PaymentMethod = "cash"
)

// ParsePaymentMethod accepts "card", "cash" and the legacy "credit_card".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card", "credit_card":
		return MethodCard, nil
	case "cash":
		return MethodCash, nil
	}
	return "", Validationf("method must be one of: card cash")
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// ParsePaymentStatus returns the payment status named by s.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return st, nil
	}
	return "", Validationf("status must be one of: paid pending failed")
}

// Payment records money received for an appointment. PaymentDate, not
// CreatedAt, drives monthly reporting and is not moved by updates.
type Payment struct {
	ID            string        `json:"id"`
	AppointmentID string        `json:"appointment_id,omitempty"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	PaymentDate   time.Time     `json:"payment_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

const (
	minReportYear = 1000
	maxReportYear = 9999
)

// ReportPeriod is a calendar month.
type ReportPeriod struct {
	Month int
	Year  int
}

// ParseReportPeriod parses raw month and year query values.
func ParseReportPeriod(month, year string) (ReportPeriod, error) {
	if strings.TrimSpace(month) == "" || strings.TrimSpace(year) == "" {
		return ReportPeriod{}, Validationf("month and year are required")
	}
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	if errM != nil || errY != nil {
		return ReportPeriod{}, errInvalidPeriod
	}
	p := ReportPeriod{Month: m, Year: y}
	return p, p.Validate()
}

var errInvalidPeriod = Validationf("invalid month or year format: use numeric values, month (1-12), year (e.g. 2024)")

// Validate checks the month is 1-12 and the year has four digits.
func (p ReportPeriod) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < minReportYear || p.Year > maxReportYear {
		return errInvalidPeriod
	}
	return nil
}

// Range returns the half-open UTC interval [start of month, start of next month).
func (p ReportPeriod) Range() (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyReport is the aggregate of all payments dated within a period.
type MonthlyReport struct {
	Period ReportPeriod
	Total  float64
	Items  []*Payment
}
