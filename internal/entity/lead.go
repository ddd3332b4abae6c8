package entity

import "time"

// Kind distinguishes the two lead forms exposed by the site.
type Kind string

const (
	KindContact   Kind = "contact"
	KindFreeTrial Kind = "free-trial"
)

// Valid reports whether k is a known lead kind.
func (k Kind) Valid() bool {
	return k == KindContact || k == KindFreeTrial
}

// Locale is a supported site language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"

	DefaultLocale = LocaleEnglish
)

// Locales lists every supported locale in routing order.
var Locales = []Locale{LocaleEnglish, LocaleArabic}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	return l == LocaleEnglish || l == LocaleArabic
}

// Dir returns the text direction used when rendering the locale.
func (l Locale) Dir() string {
	if l == LocaleArabic {
		return "rtl"
	}
	return "ltr"
}

// Status tracks the follow-up state of a lead.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusNew, StatusContacted, StatusConverted, StatusClosed}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// NotApplicable fills contact-only columns on free-trial leads.
const NotApplicable = "N/A"

// LeadBase holds the fields shared by every lead kind.
type LeadBase struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Service  string `json:"service"`
	Message  string `json:"message"`
	Language Locale `json:"language"`
}

// ContactDetails holds the fields only the contact form collects.
type ContactDetails struct {
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Budget  string `json:"budget"`
}

// Lead is an accepted form submission. Contact is set only for KindContact.
type Lead struct {
	LeadBase
	ID        string          `json:"id"`
	Kind      Kind            `json:"type"`
	Contact   *ContactDetails `json:"contact,omitempty"`
	Status    Status          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// Phone returns the contact phone or the placeholder for free-trial leads.
func (l Lead) Phone() string {
	if l.Contact == nil {
		return NotApplicable
	}
	return l.Contact.Phone
}

// Company returns the contact company or the placeholder for free-trial leads.
func (l Lead) Company() string {
	if l.Contact == nil {
		return NotApplicable
	}
	return l.Contact.Company
}

// Budget returns the contact budget or the placeholder for free-trial leads.
func (l Lead) Budget() string {
	if l.Contact == nil {
		return NotApplicable
	}
	return l.Contact.Budget
}
