package service

import (
	"context"
	"errors"

	"github.com/ignite-agency/website/api/internal/entity"
	"github.com/ignite-agency/website/api/internal/notify"
)

// SheetsMirror appends accepted leads to the kind's spreadsheet table.
type SheetsMirror struct {
	client SheetsClient
	ranges SheetRanges
}

// NewSheetsMirror creates a mirror writing through client.
func NewSheetsMirror(client SheetsClient, ranges SheetRanges) *SheetsMirror {
	return &SheetsMirror{client: client, ranges: ranges}
}

func (m *SheetsMirror) Name() string { return "sheets" }

// Mirror appends one row in the table's column order.
func (m *SheetsMirror) Mirror(ctx context.Context, lead entity.Lead) error {
	if m.client == nil {
		return ErrSheetsNotConfigured
	}
	return m.client.AppendRow(ctx, m.ranges.For(lead.Kind), SheetRow(lead))
}

// SheetRow lays out lead in the column order of its kind's table.
func SheetRow(lead entity.Lead) []string {
	ts := entity.FormatTimestamp(lead.Timestamp)
	if lead.Kind == entity.KindFreeTrial {
		return []string{
			ts,
			lead.Name,
			lead.Email,
			lead.Service,
			lead.Message,
			string(lead.Language),
			string(lead.Status),
		}
	}

	var company, budget string
	if lead.Contact != nil {
		company, budget = lead.Contact.Company, lead.Contact.Budget
	}
	return []string{
		ts,
		lead.Name,
		lead.Email,
		lead.Phone(),
		company,
		lead.Service,
		budget,
		lead.Message,
		string(lead.Language),
		string(lead.Status),
		string(lead.Kind),
	}
}

// EmailMirror notifies the site admin about accepted leads.
type EmailMirror struct {
	sender notify.EmailSender
	to     string
}

// NewEmailMirror creates a mirror sending to the admin recipient to.
func NewEmailMirror(sender notify.EmailSender, to string) *EmailMirror {
	return &EmailMirror{sender: sender, to: to}
}

func (m *EmailMirror) Name() string { return "email" }

// Mirror sends the notification for lead.
func (m *EmailMirror) Mirror(ctx context.Context, lead entity.Lead) error {
	if m.sender == nil || m.to == "" {
		return errors.New("email notification not configured")
	}
	return m.sender.Send(ctx, notify.LeadEmail(m.to, lead))
}

var (
	_ Mirror = (*SheetsMirror)(nil)
	_ Mirror = (*EmailMirror)(nil)
)
