package entity

import (
	"strconv"
	"time"
)

// Field is one named column of an exported record.
type Field struct {
	Name  string
	Value string
}

// Submission is a lead read back from the spreadsheet mirror.
type Submission interface {
	// SubmissionKind reports which range the record was read from.
	SubmissionKind() Kind
	// SubmittedAt parses the timestamp column; unparsable values are zero.
	SubmittedAt() time.Time
	CurrentStatus() Status
	ServiceName() string
	// Fields lists the record's columns in declaration order.
	Fields() []Field
}

// ContactSubmission is one row of the contact range.
type ContactSubmission struct {
	ID        int    `json:"id"`
	RowIndex  int    `json:"rowIndex"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Service   string `json:"service"`
	Budget    string `json:"budget"`
	Message   string `json:"message"`
	Language  string `json:"language"`
	Status    Status `json:"status"`
	Type      string `json:"type"`
}

// SubmissionKind implements Submission.
func (s ContactSubmission) SubmissionKind() Kind { return KindContact }

// SubmittedAt implements Submission.
func (s ContactSubmission) SubmittedAt() time.Time { return parseTimestamp(s.Timestamp) }

// CurrentStatus implements Submission.
func (s ContactSubmission) CurrentStatus() Status { return s.Status }

// ServiceName implements Submission.
func (s ContactSubmission) ServiceName() string { return s.Service }

// Fields implements Submission; rowIndex is not exported.
func (s ContactSubmission) Fields() []Field {
	return []Field{
		{"id", strconv.Itoa(s.ID)},
		{"timestamp", s.Timestamp},
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"company", s.Company},
		{"service", s.Service},
		{"budget", s.Budget},
		{"message", s.Message},
		{"language", s.Language},
		{"status", string(s.Status)},
		{"type", s.Type},
	}
}

// FreeTrialRequest is one row of the free-trial range.
type FreeTrialRequest struct {
	ID          int    `json:"id"`
	RowIndex    int    `json:"rowIndex"`
	Timestamp   string `json:"timestamp"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Status      Status `json:"status"`
}

// SubmissionKind implements Submission.
func (r FreeTrialRequest) SubmissionKind() Kind { return KindFreeTrial }

// SubmittedAt implements Submission.
func (r FreeTrialRequest) SubmittedAt() time.Time { return parseTimestamp(r.Timestamp) }

// CurrentStatus implements Submission.
func (r FreeTrialRequest) CurrentStatus() Status { return r.Status }

// ServiceName implements Submission.
func (r FreeTrialRequest) ServiceName() string { return r.Service }

// Fields implements Submission; rowIndex is not exported.
func (r FreeTrialRequest) Fields() []Field {
	return []Field{
		{"id", strconv.Itoa(r.ID)},
		{"timestamp", r.Timestamp},
		{"name", r.Name},
		{"email", r.Email},
		{"service", r.Service},
		{"description", r.Description},
		{"language", r.Language},
		{"status", string(r.Status)},
	}
}

// TimestampLayout is the format written to the spreadsheet timestamp column.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t the way the spreadsheet mirror stores it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

var (
	_ Submission = ContactSubmission{}
	_ Submission = FreeTrialRequest{}
)
