package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ignite-agency/website/api/internal/entity"
	"github.com/ignite-agency/website/api/internal/metrics"
	"github.com/ignite-agency/website/api/internal/notify"
	"github.com/ignite-agency/website/api/internal/sheets/sheetstest"
)

type stubLeadsRepo struct {
	inserted []entity.Lead
	err      error
}

func (s *stubLeadsRepo) Insert(ctx context.Context, lead entity.Lead) error {
	s.inserted = append(s.inserted, lead)
	return s.err
}

type recordingMirror struct {
	name  string
	err   error
	panic bool
	seen  []entity.Lead
	order *[]string
}

func (m *recordingMirror) Name() string { return m.name }

func (m *recordingMirror) Mirror(ctx context.Context, lead entity.Lead) error {
	m.seen = append(m.seen, lead)
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
	if m.panic {
		panic("mirror exploded")
	}
	return m.err
}

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestLeadsService(repo *stubLeadsRepo, opts ...LeadsServiceOption) *LeadsService {
	opts = append([]LeadsServiceOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewLeadsService(NewLeadValidator("EG"), repo, opts...)
}

func TestLeadsService_SubmitPersistsOnceThenMirrors(t *testing.T) {
	repo := &stubLeadsRepo{}
	var order []string
	sheetsMirror := &recordingMirror{name: "sheets", order: &order}
	emailMirror := &recordingMirror{name: "email", order: &order}
	svc := newTestLeadsService(repo, WithMirrors(sheetsMirror, emailMirror))

	lead, err := svc.Submit(context.Background(), entity.KindContact, validContactRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected exactly one persistence attempt, got %d", len(repo.inserted))
	}
	stored := repo.inserted[0]
	if stored.Status != entity.StatusNew || !stored.Timestamp.Equal(fixedNow) || stored.ID == "" {
		t.Fatalf("unexpected stored lead: %+v", stored)
	}
	if lead.ID != stored.ID {
		t.Fatalf("expected returned id %s to match stored id %s", lead.ID, stored.ID)
	}
	if len(sheetsMirror.seen) != 1 || len(emailMirror.seen) != 1 {
		t.Fatalf("expected each mirror to run once")
	}
	if len(order) != 2 || order[0] != "sheets" || order[1] != "email" {
		t.Fatalf("unexpected mirror order: %v", order)
	}
}

func TestLeadsService_ValidationShortCircuits(t *testing.T) {
	repo := &stubLeadsRepo{}
	mirror := &recordingMirror{name: "sheets"}
	svc := newTestLeadsService(repo, WithMirrors(mirror))

	req := validContactRequest()
	req.Phone = ""
	req.Message = "short"

	_, err := svc.Submit(context.Background(), entity.KindContact, req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected both phone and message reported, got %v", verr.Fields())
	}
	if len(repo.inserted) != 0 || len(mirror.seen) != 0 {
		t.Fatalf("expected no side effects, got %d inserts and %d mirrors", len(repo.inserted), len(mirror.seen))
	}
}

func TestLeadsService_FailuresDoNotPropagate(t *testing.T) {
	repo := &stubLeadsRepo{err: errors.New("no reachable servers")}
	failing := &recordingMirror{name: "sheets", err: errors.New("quota exceeded")}
	panicking := &recordingMirror{name: "email", panic: true}
	after := &recordingMirror{name: "audit"}

	reg := prometheus.NewRegistry()
	m := metrics.NewLeadMetrics(reg)
	svc := newTestLeadsService(repo, WithMirrors(failing, panicking, after), WithLeadMetrics(m))

	if _, err := svc.Submit(context.Background(), entity.KindFreeTrial, validFreeTrialRequest()); err != nil {
		t.Fatalf("expected collaborator failures to be swallowed, got %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one persistence attempt, got %d", len(repo.inserted))
	}
	if len(after.seen) != 1 {
		t.Fatalf("expected later mirrors to run after earlier failures")
	}

	count, err := testutil.GatherAndCount(reg, "ignite_leads_persist_total", "ignite_leads_mirror_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected persist error and three mirror series, got %d", count)
	}
}

func TestLeadsService_NoRepository(t *testing.T) {
	mirror := &recordingMirror{name: "sheets"}
	svc := NewLeadsService(nil, nil, WithMirrors(mirror, nil))

	lead, err := svc.Submit(context.Background(), entity.KindContact, validContactRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID == "" {
		t.Fatalf("expected generated id even without a document store")
	}
	if len(mirror.seen) != 1 {
		t.Fatalf("expected mirror to run without a document store")
	}
}

func TestLeadsService_ResubmissionDuplicates(t *testing.T) {
	repo := &stubLeadsRepo{}
	svc := newTestLeadsService(repo)

	first, _ := svc.Submit(context.Background(), entity.KindContact, validContactRequest())
	second, _ := svc.Submit(context.Background(), entity.KindContact, validContactRequest())
	if len(repo.inserted) != 2 || first.ID == second.ID {
		t.Fatalf("expected two distinct records, got %d inserts", len(repo.inserted))
	}
}

func TestSheetsMirror_AppendsKindRow(t *testing.T) {
	fake := sheetstest.New()
	ranges := SheetRanges{Contact: "Contact Submissions!A:K", FreeTrial: "Free Trial Requests!A:G"}
	svc := newTestLeadsService(&stubLeadsRepo{}, WithMirrors(NewSheetsMirror(fake, ranges)))

	if _, err := svc.Submit(context.Background(), entity.KindContact, validContactRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), entity.KindFreeTrial, validFreeTrialRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contacts := fake.Rows("Contact Submissions")
	if len(contacts) != 1 || len(contacts[0]) != len(ContactHeaders) {
		t.Fatalf("unexpected contact rows: %v", contacts)
	}
	if contacts[0][0] != "2026-10-14T09:30:00.000Z" || contacts[0][9] != "new" || contacts[0][10] != "contact" {
		t.Fatalf("unexpected contact row: %v", contacts[0])
	}

	trials := fake.Rows("Free Trial Requests")
	if len(trials) != 1 || len(trials[0]) != len(FreeTrialHeaders) {
		t.Fatalf("unexpected free trial rows: %v", trials)
	}
	if trials[0][4] != "Grow our Instagram audience in Cairo" || trials[0][6] != "new" {
		t.Fatalf("unexpected free trial row: %v", trials[0])
	}
}

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	s.sent = append(s.sent, msg.To+"|"+msg.Subject)
	return s.err
}

func TestEmailMirror(t *testing.T) {
	sender := &stubSender{}
	mirror := NewEmailMirror(sender, "admin@example.com")
	lead := entity.Lead{Kind: entity.KindContact, LeadBase: entity.LeadBase{Name: "Jo Smith"}}

	if err := mirror.Mirror(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "admin@example.com|New Contact Form Submission - Jo Smith" {
		t.Fatalf("unexpected sent messages: %v", sender.sent)
	}

	if err := NewEmailMirror(nil, "admin@example.com").Mirror(context.Background(), lead); err == nil {
		t.Fatalf("expected error without a sender")
	}
}
