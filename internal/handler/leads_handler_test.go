package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/dto"
	"github.com/ignite-agency/website/api/internal/entity"
	"github.com/ignite-agency/website/api/internal/service"
	"github.com/ignite-agency/website/api/internal/sheets/sheetstest"
)

var testRanges = service.SheetRanges{Contact: "Contact Submissions!A:K", FreeTrial: "Free Trial Requests!A:G"}

type countingLeadsRepo struct {
	calls int
	last  entity.Lead
	err   error
}

func (r *countingLeadsRepo) Insert(ctx context.Context, lead entity.Lead) error {
	r.calls++
	r.last = lead
	return r.err
}

func newLeadsHandler(repo *countingLeadsRepo, fake *sheetstest.Fake) *LeadsHandler {
	var opts []service.LeadsServiceOption
	if fake != nil {
		opts = append(opts, service.WithMirrors(service.NewSheetsMirror(fake, testRanges)))
	}
	return NewLeadsHandler(service.NewLeadsService(service.NewLeadValidator("EG"), repo, opts...))
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const joSmithContact = `{"name":"Jo Smith","email":"jo@x.com","phone":"1234567890","service":"seo","message":"Need help with SEO for our shop","type":"contact","language":"en"}`

func TestLeadsHandler_SubmitContactThenRead(t *testing.T) {
	repo := &countingLeadsRepo{}
	fake := sheetstest.New()
	fake.Seed("Contact Submissions", service.ContactHeaders)
	h := newLeadsHandler(repo, fake)

	e := echo.New()
	c, rec := postJSON(e, "/api/contact", joSmithContact)
	if err := h.SubmitContact(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created dto.LeadCreatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !created.Success || created.ID == "" || created.ID != repo.last.ID {
		t.Fatalf("unexpected response: %+v", created)
	}
	if created.Message != "Contact form submitted successfully" {
		t.Fatalf("unexpected message: %s", created.Message)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one persistence attempt, got %d", repo.calls)
	}

	submissions := NewSubmissionsHandler(service.NewSubmissionsService(fake, testRanges), "")
	req := httptest.NewRequest(http.MethodGet, "/api/contact/submissions?type=contact", nil)
	listRec := httptest.NewRecorder()
	if err := submissions.List(e.NewContext(req, listRec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Success bool                       `json:"success"`
		Data    []entity.ContactSubmission `json:"data"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if !payload.Success || len(payload.Data) != 1 {
		t.Fatalf("expected one submission, got %+v", payload)
	}
	got := payload.Data[0]
	if got.Status != entity.StatusNew || got.Service != "seo" || got.Name != "Jo Smith" || got.RowIndex != 0 {
		t.Fatalf("unexpected submission: %+v", got)
	}
}

func TestLeadsHandler_ValidationError(t *testing.T) {
	tests := map[string]struct {
		body   string
		fields []string
	}{
		"missing phone": {
			body:   `{"name":"Jo Smith","email":"jo@x.com","service":"seo","message":"Need help with SEO for our shop","type":"contact","language":"en"}`,
			fields: []string{"phone"},
		},
		"short message": {
			body:   `{"name":"Jo Smith","email":"jo@x.com","phone":"1234567890","service":"seo","message":"help","type":"contact","language":"en"}`,
			fields: []string{"message"},
		},
		"missing phone and short message": {
			body:   `{"name":"Jo Smith","email":"jo@x.com","service":"seo","message":"help","type":"contact","language":"en"}`,
			fields: []string{"phone", "message"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &countingLeadsRepo{}
			fake := sheetstest.New()
			h := newLeadsHandler(repo, fake)

			c, rec := postJSON(echo.New(), "/api/contact", tt.body)
			if err := h.SubmitContact(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var payload APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Success || payload.Message != "Validation error" || len(payload.Errors) != len(tt.fields) {
				t.Fatalf("unexpected payload: %+v", payload)
			}
			for i, field := range tt.fields {
				if payload.Errors[i].Field != field {
					t.Fatalf("expected field %s at %d, got %+v", field, i, payload.Errors)
				}
			}
			if repo.calls != 0 || fake.Appends != 0 {
				t.Fatalf("expected no side effects, got %d inserts and %d appends", repo.calls, fake.Appends)
			}
		})
	}
}

func TestLeadsHandler_MirrorFailureStillCreated(t *testing.T) {
	repo := &countingLeadsRepo{err: errors.New("no reachable servers")}
	fake := sheetstest.New()
	fake.AppendErr = errors.New("quota exceeded")
	h := newLeadsHandler(repo, fake)

	c, rec := postJSON(echo.New(), "/api/contact", joSmithContact)
	if err := h.SubmitContact(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite failing collaborators, got %d", rec.Code)
	}
	if repo.calls != 1 || fake.Appends != 1 {
		t.Fatalf("expected one attempt each, got %d inserts and %d appends", repo.calls, fake.Appends)
	}
}

func TestLeadsHandler_SubmitFreeTrial(t *testing.T) {
	repo := &countingLeadsRepo{}
	fake := sheetstest.New()
	h := newLeadsHandler(repo, fake)

	body := `{"name":"Sara Ali","email":"sara@example.com","service":"social-media","message":"Grow our Instagram audience","type":"free-trial","language":"ar"}`
	c, rec := postJSON(echo.New(), "/api/contact/free-trial", body)
	if err := h.SubmitFreeTrial(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Free trial request submitted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if repo.last.Kind != entity.KindFreeTrial || repo.last.Phone() != entity.NotApplicable {
		t.Fatalf("unexpected stored lead: %+v", repo.last)
	}
	if rows := fake.Rows("Free Trial Requests"); len(rows) != 1 || rows[0][5] != "ar" {
		t.Fatalf("unexpected mirrored rows: %v", rows)
	}

	// A contact payload posted to the free-trial endpoint is rejected by type.
	c, rec = postJSON(echo.New(), "/api/contact/free-trial", joSmithContact)
	_ = h.SubmitFreeTrial(c)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"field":"type"`) {
		t.Fatalf("expected type violation, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLeadsHandler_InvalidPayload(t *testing.T) {
	repo := &countingLeadsRepo{}
	h := newLeadsHandler(repo, nil)

	c, rec := postJSON(echo.New(), "/api/contact", `{"name":`)
	_ = h.SubmitContact(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if repo.calls != 0 {
		t.Fatalf("expected no persistence for malformed body")
	}
}
