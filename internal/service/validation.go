package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/ignite-agency/website/api/internal/dto"
	"github.com/ignite-agency/website/api/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.([a-z]{2,}|xn--[a-z0-9-]+)$`)
	idnaProfile  = idna.Lookup
)

const (
	defaultPhoneRegion = "EG"
	minNameLength      = 2
	minPhoneLength     = 10
	minMessageLength   = 10
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every constraint a payload violated.
type ValidationError struct {
	Issues []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

type issues []FieldError

func (is *issues) add(field, message string) {
	*is = append(*is, FieldError{Field: field, Message: message})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Issues: is}
}

// LeadValidator checks lead payloads against the rules of their kind.
type LeadValidator struct {
	DefaultRegion string
}

// NewLeadValidator builds a validator that normalizes phones for region.
func NewLeadValidator(region string) *LeadValidator {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &LeadValidator{DefaultRegion: region}
}

// Validate returns the lead described by req, or a *ValidationError naming
// every violated field. The returned lead has no id, status or timestamp yet.
func (v *LeadValidator) Validate(kind entity.Kind, req dto.LeadRequest) (entity.Lead, error) {
	var errs issues

	base := entity.LeadBase{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Service:  strings.TrimSpace(req.Service),
		Message:  strings.TrimSpace(req.Message),
		Language: entity.Locale(strings.TrimSpace(req.Language)),
	}

	if utf8.RuneCountInString(base.Name) < minNameLength {
		errs.add("name", "Name must be at least 2 characters")
	}
	if !validEmail(base.Email) {
		errs.add("email", "Please enter a valid email")
	}

	var contact *entity.ContactDetails
	if kind == entity.KindContact {
		phone := strings.TrimSpace(req.Phone)
		if utf8.RuneCountInString(phone) < minPhoneLength {
			errs.add("phone", "Please enter a valid phone number")
		}
		contact = &entity.ContactDetails{
			Phone:   v.normalizePhone(phone),
			Company: strings.TrimSpace(req.Company),
			Budget:  strings.TrimSpace(req.Budget),
		}
	}

	if base.Service == "" {
		errs.add("service", "Please select a service")
	}
	if utf8.RuneCountInString(base.Message) < minMessageLength {
		if kind == entity.KindFreeTrial {
			errs.add("message", "Description must be at least 10 characters")
		} else {
			errs.add("message", "Message must be at least 10 characters")
		}
	}
	if entity.Kind(strings.TrimSpace(req.Type)) != kind {
		errs.add("type", fmt.Sprintf("Invalid type, expected %q", kind))
	}
	if !base.Language.Valid() {
		errs.add("language", "Language must be one of: en, ar")
	}

	if err := errs.err(); err != nil {
		return entity.Lead{}, err
	}

	return entity.Lead{Kind: kind, LeadBase: base, Contact: contact}, nil
}

// ValidateStatusUpdate checks a dashboard status change request.
func ValidateStatusUpdate(req dto.StatusUpdateRequest) (entity.Kind, int, entity.Status, error) {
	var errs issues

	kind := entity.Kind(strings.TrimSpace(req.Type))
	if !kind.Valid() {
		errs.add("type", `Type must be one of: contact, free-trial`)
	}
	rowIndex := 0
	switch {
	case req.RowIndex == nil:
		errs.add("rowIndex", "Row index is required")
	case *req.RowIndex < 0:
		errs.add("rowIndex", "Row index must be greater than or equal to 0")
	default:
		rowIndex = *req.RowIndex
	}
	status := entity.Status(strings.TrimSpace(req.Status))
	if !status.Valid() {
		errs.add("status", "Status must be one of: new, contacted, converted, closed")
	}

	if err := errs.err(); err != nil {
		return "", 0, "", err
	}
	return kind, rowIndex, status, nil
}

func validEmail(raw string) bool {
	email := strings.ToLower(raw)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	asciiDomain, err := idnaProfile.ToASCII(email[at+1:])
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return false
	}
	return emailPattern.MatchString(email[:at] + "@" + asciiDomain)
}

// normalizePhone returns the E.164 form when the number parses, else raw.
func (v *LeadValidator) normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, v.DefaultRegion)
	if err != nil {
		return raw
	}
	if !phonenumbers.IsValidNumber(number) {
		return raw
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
