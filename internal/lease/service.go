package lease

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=lease
type Repository interface {
	CreateLease(ctx context.Context, l *Lease) error
	GetLease(ctx context.Context, id uuid.UUID) (*Lease, error)
	UpdateLease(ctx context.Context, l *Lease) error
	ListLeases(ctx context.Context, q Query) ([]*Lease, error)
}

// Applications is the read side of the application store a lease is created from.
type Applications interface {
	Get(ctx context.Context, id uuid.UUID) (*application.Application, error)
}

type Templates interface {
	Get(ctx context.Context, id uuid.UUID) (*template.Template, error)
}

// Query selects stored leases. Nil fields are not filtered on.
// OriginalLeaseID selects renewals of the given lease.
type Query struct {
	Statuses        []Status
	LandlordID      *uuid.UUID
	ApplicationID   *uuid.UUID
	OriginalLeaseID *uuid.UUID
	EndFrom         *time.Time
	EndTo           *time.Time
}

const (
	DefaultRenewalHorizonDays = 90
	DefaultWarnPercent        = 3
)

type Service struct {
	repo      Repository
	apps      Applications
	templates Templates

	now         func() time.Time
	horizonDays int
	warnPercent decimal.Decimal
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRenewalHorizon(days int) Option {
	return func(s *Service) { s.horizonDays = days }
}

// WithRentIncreaseWarnPercent sets the increase above which renewals carry a
// rent-stabilization warning.
func WithRentIncreaseWarnPercent(pct float64) Option {
	return func(s *Service) { s.warnPercent = decimal.NewFromFloat(pct) }
}

func NewService(repo Repository, apps Applications, templates Templates, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		apps:        apps,
		templates:   templates,
		now:         time.Now,
		horizonDays: DefaultRenewalHorizonDays,
		warnPercent: decimal.NewFromInt(DefaultWarnPercent),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Now returns the service clock, so callers derive display state from the same instant.
func (s *Service) Now() time.Time {
	return s.now()
}

// CreateParams describes a new lease. Zero amounts take the application's amount.
type CreateParams struct {
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     int64
	SecurityDeposit int64
	Terms           Terms
	DocumentURL     string
}

func validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperr.Validation("start and end dates are required")
	}

	if !dateOnly(end).After(dateOnly(start)) {
		return apperr.Validation("end date %s must be after start date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	return nil
}

func validateAmounts(rent, deposit int64) error {
	if rent <= 0 {
		return apperr.Validation("monthly rent must be positive, got %d", rent)
	}

	if deposit <= 0 {
		return apperr.Validation("security deposit must be positive, got %d", deposit)
	}

	return nil
}

func (s *Service) checkTerms(ctx context.Context, t Terms) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if t.TemplateID == nil {
		return nil
	}

	if _, err := s.templates.Get(ctx, *t.TemplateID); err != nil {
		return fmt.Errorf("checking template %s: %w", t.TemplateID, err)
	}

	return nil
}

func (s *Service) CreateFromApplication(ctx context.Context, applicationID uuid.UUID, params CreateParams) (*Lease, error) {
	if params.MonthlyRent < 0 || params.SecurityDeposit < 0 {
		return nil, apperr.Validation("amounts must not be negative")
	}

	if err := validateDates(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}

	terms := params.Terms.withDefaults()
	if terms.Kind == TermsRenewal {
		return nil, apperr.Validation("renewal terms can only be created by renewing a lease")
	}

	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !app.Approved() {
		return nil, apperr.State("application %s is %s, not approved", applicationID, app.Status)
	}

	rent, deposit := params.MonthlyRent, params.SecurityDeposit
	if rent == 0 {
		rent = app.MonthlyRent
	}

	if deposit == 0 {
		deposit = app.SecurityDeposit
	}

	if err := validateAmounts(rent, deposit); err != nil {
		return nil, err
	}

	if err := s.checkTerms(ctx, terms); err != nil {
		return nil, err
	}

	l := &Lease{
		ApplicationID:   applicationID,
		Status:          StatusDraft,
		StartDate:       dateOnly(params.StartDate),
		EndDate:         dateOnly(params.EndDate),
		MonthlyRent:     rent,
		SecurityDeposit: deposit,
		DocumentURL:     strings.TrimSpace(params.DocumentURL),
		Terms:           terms,
	}

	if err := s.repo.CreateLease(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// BatchResult reports the outcome of one row of a batch create.
type BatchResult struct {
	Row           int
	ApplicationID uuid.UUID
	Lease         *Lease
	Err           error
}

// BatchRow is one lease to create from an application.
type BatchRow struct {
	Row           int
	ApplicationID uuid.UUID
	Params        CreateParams
}

// CreateBatch creates each row independently; a failing row does not stop the rest.
func (s *Service) CreateBatch(ctx context.Context, rows []BatchRow) []BatchResult {
	results := make([]BatchResult, 0, len(rows))

	for _, r := range rows {
		l, err := s.CreateFromApplication(ctx, r.ApplicationID, r.Params)
		results = append(results, BatchResult{Row: r.Row, ApplicationID: r.ApplicationID, Lease: l, Err: err})
	}

	return results
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Lease, error) {
	return s.repo.GetLease(ctx, id)
}

type ListFilter struct {
	Status          *Status
	LandlordID      *uuid.UUID
	ApplicationID   *uuid.UUID
	OriginalLeaseID *uuid.UUID
}

// List filters on effective status, so asking for EXPIRED also returns stored
// ACTIVE leases whose end date has passed.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Lease, error) {
	q := Query{
		LandlordID:      filter.LandlordID,
		ApplicationID:   filter.ApplicationID,
		OriginalLeaseID: filter.OriginalLeaseID,
	}

	if filter.Status != nil {
		if !filter.Status.Valid() {
			return nil, apperr.Validation("unknown lease status %q", *filter.Status)
		}

		q.Statuses = []Status{*filter.Status}
		if *filter.Status == StatusExpired {
			q.Statuses = append(q.Statuses, StatusActive)
		}
	}

	leases, err := s.repo.ListLeases(ctx, q)
	if err != nil {
		return nil, err
	}

	if filter.Status == nil {
		return leases, nil
	}

	now := s.now()
	out := leases[:0]

	for _, l := range leases {
		if EffectiveStatus(l, now) == *filter.Status {
			out = append(out, l)
		}
	}

	return out, nil
}

// UpdateParams edits a draft lease. Nil fields are left unchanged.
type UpdateParams struct {
	StartDate       *time.Time
	EndDate         *time.Time
	MonthlyRent     *int64
	SecurityDeposit *int64
	Terms           *Terms
	DocumentURL     *string
}

func (s *Service) UpdateDraft(ctx context.Context, id uuid.UUID, params UpdateParams) (*Lease, error) {
	l, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusDraft {
		return nil, apperr.State("lease %s is %s; only drafts can be edited", id, l.Status)
	}

	if params.StartDate != nil {
		l.StartDate = dateOnly(*params.StartDate)
	}

	if params.EndDate != nil {
		l.EndDate = dateOnly(*params.EndDate)
	}

	if params.MonthlyRent != nil {
		l.MonthlyRent = *params.MonthlyRent
	}

	if params.SecurityDeposit != nil {
		l.SecurityDeposit = *params.SecurityDeposit
	}

	if params.DocumentURL != nil {
		l.DocumentURL = strings.TrimSpace(*params.DocumentURL)
	}

	if err := validateDates(l.StartDate, l.EndDate); err != nil {
		return nil, err
	}

	if err := validateAmounts(l.MonthlyRent, l.SecurityDeposit); err != nil {
		return nil, err
	}

	if params.Terms != nil {
		terms := params.Terms.withDefaults()
		if terms.Kind != l.Terms.Kind {
			return nil, apperr.Validation("terms kind cannot change from %s to %s", l.Terms.Kind, terms.Kind)
		}

		if err := s.checkTerms(ctx, terms); err != nil {
			return nil, err
		}

		l.Terms = terms
	}

	if err := s.repo.UpdateLease(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// SendForSignature moves a draft to PENDING_SIGNATURE. The document URL is
// required, either given here or already stored on the lease.
func (s *Service) SendForSignature(ctx context.Context, id uuid.UUID, documentURL string) (*Lease, error) {
	l, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusDraft {
		return nil, apperr.State("lease %s is %s; only drafts can be sent for signature", id, l.Status)
	}

	if u := strings.TrimSpace(documentURL); u != "" {
		l.DocumentURL = u
	}

	if l.DocumentURL == "" {
		return nil, apperr.Validation("a document url is required to send lease %s for signature", id)
	}

	l.Status = StatusPendingSignature

	if err := s.repo.UpdateLease(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) Sign(ctx context.Context, id uuid.UUID) (*Lease, error) {
	l, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusPendingSignature {
		return nil, apperr.State("lease %s is %s; only leases pending signature can be signed", id, l.Status)
	}

	signedAt := s.now()
	l.Status = StatusActive
	l.SignedAt = &signedAt

	if err := s.repo.UpdateLease(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// RenewParams describes a renewal. At most one of NewMonthlyRent and
// RentIncrease may be set; with neither, the current rent carries forward.
type RenewParams struct {
	NewEndDate     time.Time
	NewMonthlyRent *int64
	RentIncrease   *RentIncrease
	Terms          *Terms
}

type RenewResult struct {
	Lease *Lease
	// Warning is set when the increase exceeds the rent-stabilization guideline.
	Warning string
}

// Renew creates a successor DRAFT lease starting on the source's end date. The
// source lease is not modified.
func (s *Service) Renew(ctx context.Context, id uuid.UUID, params RenewParams) (*RenewResult, error) {
	if params.NewMonthlyRent != nil && params.RentIncrease != nil {
		return nil, apperr.Validation("give either a new monthly rent or a rent increase, not both")
	}

	src, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if st := EffectiveStatus(src, s.now()); st != StatusActive {
		return nil, apperr.State("lease %s is %s; only active leases can be renewed", id, st)
	}

	if params.NewEndDate.IsZero() || !dateOnly(params.NewEndDate).After(dateOnly(src.EndDate)) {
		return nil, apperr.Validation("new end date must be after the current end date %s",
			src.EndDate.Format(time.DateOnly))
	}

	inc := RentIncrease{Mode: IncreaseNone, Value: decimal.Zero}

	switch {
	case params.NewMonthlyRent != nil:
		inc = RentIncrease{Mode: IncreaseExplicit, Value: decimal.NewFromInt(*params.NewMonthlyRent)}
	case params.RentIncrease != nil:
		inc = *params.RentIncrease
	}

	rent, err := ApplyIncrease(src.MonthlyRent, inc)
	if err != nil {
		return nil, err
	}

	terms := Terms{Kind: TermsRenewal}
	if params.Terms != nil {
		terms.TemplateID = params.Terms.TemplateID
		terms.CustomClauses = params.Terms.CustomClauses
		terms.Notes = params.Terms.Notes
	} else {
		terms.TemplateID = src.Terms.TemplateID
		terms.CustomClauses = src.Terms.CustomClauses
	}

	warning := stabilizationWarning(src.MonthlyRent, rent, s.warnPercent)
	terms.Renewal = &Renewal{
		OriginalLeaseID:      src.ID,
		PreviousMonthlyRent:  src.MonthlyRent,
		RentIncrease:         inc,
		StabilizationWarning: warning != "",
	}

	if err := s.checkTerms(ctx, terms); err != nil {
		return nil, err
	}

	next := &Lease{
		ApplicationID:   src.ApplicationID,
		Status:          StatusDraft,
		StartDate:       dateOnly(src.EndDate),
		EndDate:         dateOnly(params.NewEndDate),
		MonthlyRent:     rent,
		SecurityDeposit: src.SecurityDeposit,
		Terms:           terms,
		Parties:         src.Parties,
	}

	if err := s.repo.CreateLease(ctx, next); err != nil {
		return nil, err
	}

	return &RenewResult{Lease: next, Warning: warning}, nil
}

type TerminateParams struct {
	TerminationDate time.Time
	Reason          string
	RefundDeposit   bool
}

// Terminate ends an ACTIVE or PENDING_SIGNATURE lease. No money moves; the
// returned DepositRefund is the intent for the payment provider.
func (s *Service) Terminate(ctx context.Context, id uuid.UUID, params TerminateParams) (*Lease, DepositRefund, error) {
	reason := strings.TrimSpace(params.Reason)
	if reason == "" {
		return nil, DepositRefund{}, apperr.Validation("a termination reason is required")
	}

	if params.TerminationDate.IsZero() {
		return nil, DepositRefund{}, apperr.Validation("a termination date is required")
	}

	l, err := s.repo.GetLease(ctx, id)
	if err != nil {
		return nil, DepositRefund{}, err
	}

	st := EffectiveStatus(l, s.now())
	if st != StatusActive && st != StatusPendingSignature {
		return nil, DepositRefund{}, apperr.State("lease %s is %s and cannot be terminated", id, st)
	}

	date := dateOnly(params.TerminationDate)
	if date.Before(dateOnly(l.StartDate)) {
		return nil, DepositRefund{}, apperr.Validation("termination date %s is before the lease start %s",
			date.Format(time.DateOnly), l.StartDate.Format(time.DateOnly))
	}

	l.Status = StatusTerminated
	l.TerminatedAt = &date
	l.TerminationReason = reason
	l.RefundDeposit = params.RefundDeposit

	if err := s.repo.UpdateLease(ctx, l); err != nil {
		return nil, DepositRefund{}, err
	}

	refund := DepositRefund{Refund: params.RefundDeposit}
	if refund.Refund {
		refund.Amount = l.SecurityDeposit
	}

	return l, refund, nil
}

type CandidateQuery struct {
	// HorizonDays of nil uses the configured default.
	HorizonDays *int
	LandlordID  *uuid.UUID
}

func (s *Service) RenewalCandidates(ctx context.Context, q CandidateQuery) ([]Candidate, error) {
	horizon := s.horizonDays
	if q.HorizonDays != nil {
		horizon = *q.HorizonDays
	}

	if horizon < 0 {
		return nil, apperr.Validation("horizon must not be negative, got %d", horizon)
	}

	now := s.now()
	from := dateOnly(now)
	to := from.AddDate(0, 0, horizon)

	leases, err := s.repo.ListLeases(ctx, Query{
		Statuses:   []Status{StatusActive},
		LandlordID: q.LandlordID,
		EndFrom:    &from,
		EndTo:      &to,
	})
	if err != nil {
		return nil, fmt.Errorf("listing active leases: %w", err)
	}

	return FindRenewalCandidates(leases, now, horizon), nil
}

type StatsQuery struct {
	LandlordID *uuid.UUID
}

func (s *Service) Stats(ctx context.Context, q StatsQuery) (Stats, error) {
	leases, err := s.repo.ListLeases(ctx, Query{LandlordID: q.LandlordID})
	if err != nil {
		return Stats{}, fmt.Errorf("listing leases: %w", err)
	}

	return Summarize(leases, s.now()), nil
}
