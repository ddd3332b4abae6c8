package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ignite-agency/website/api/internal/dto"
	"github.com/ignite-agency/website/api/internal/entity"
	"github.com/ignite-agency/website/api/internal/metrics"
	"github.com/ignite-agency/website/api/internal/repository"
)

// Mirror is a best-effort secondary copy of an accepted lead.
type Mirror interface {
	Name() string
	Mirror(ctx context.Context, lead entity.Lead) error
}

// LeadsService accepts lead submissions: validate, persist once, then mirror.
type LeadsService struct {
	validator *LeadValidator
	repo      repository.LeadsRepository
	mirrors   []Mirror
	metrics   *metrics.LeadMetrics
	now       func() time.Time
	newID     func() string
}

// LeadsServiceOption configures optional dependencies.
type LeadsServiceOption func(*LeadsService)

// WithMirrors registers best-effort mirrors, run in order after the primary write.
func WithMirrors(mirrors ...Mirror) LeadsServiceOption {
	return func(s *LeadsService) {
		for _, m := range mirrors {
			if m != nil {
				s.mirrors = append(s.mirrors, m)
			}
		}
	}
}

// WithLeadMetrics records pipeline outcomes.
func WithLeadMetrics(m *metrics.LeadMetrics) LeadsServiceOption {
	return func(s *LeadsService) {
		s.metrics = m
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) LeadsServiceOption {
	return func(s *LeadsService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLeadsService creates a new instance of LeadsService. repo may be nil when
// no document store is configured.
func NewLeadsService(validator *LeadValidator, repo repository.LeadsRepository, opts ...LeadsServiceOption) *LeadsService {
	if validator == nil {
		validator = NewLeadValidator(defaultPhoneRegion)
	}
	s := &LeadsService{
		validator: validator,
		repo:      repo,
		now:       time.Now,
		newID:     repository.NewLeadID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and records one lead. Only validation failures are
// returned as errors; storage and mirror failures are logged.
func (s *LeadsService) Submit(ctx context.Context, kind entity.Kind, req dto.LeadRequest) (entity.Lead, error) {
	lead, err := s.validator.Validate(kind, req)
	if err != nil {
		s.metrics.ObserveSubmission(string(kind), "invalid")
		return entity.Lead{}, err
	}

	lead.ID = s.newID()
	lead.Status = entity.StatusNew
	lead.Timestamp = s.now().UTC()

	s.persist(ctx, lead)
	for _, m := range s.mirrors {
		s.runMirror(ctx, m, lead)
	}

	s.metrics.ObserveSubmission(string(kind), "accepted")
	return lead, nil
}

func (s *LeadsService) persist(ctx context.Context, lead entity.Lead) {
	if s.repo == nil {
		log.Printf("lead_id=%s kind=%s persist=skipped reason=no document store configured", lead.ID, lead.Kind)
		s.metrics.ObservePersist("skipped")
		return
	}
	if err := s.repo.Insert(ctx, lead); err != nil {
		log.Printf("lead_id=%s kind=%s persist=failed err=%v", lead.ID, lead.Kind, err)
		s.metrics.ObservePersist("error")
		return
	}
	s.metrics.ObservePersist("ok")
}

func (s *LeadsService) runMirror(ctx context.Context, m Mirror, lead entity.Lead) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("lead_id=%s mirror=%s panic=%v", lead.ID, m.Name(), r)
			s.metrics.ObserveMirror(m.Name(), fmt.Errorf("panic: %v", r))
		}
	}()

	err := m.Mirror(ctx, lead)
	s.metrics.ObserveMirror(m.Name(), err)
	if err != nil {
		log.Printf("lead_id=%s mirror=%s err=%v", lead.ID, m.Name(), err)
	}
}
