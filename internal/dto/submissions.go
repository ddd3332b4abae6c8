package dto

import "github.com/ignite-agency/website/api/internal/entity"

// StatusBreakdown counts submissions per status.
type StatusBreakdown struct {
	New       int `json:"new"`
	Contacted int `json:"contacted"`
	Converted int `json:"converted"`
	Closed    int `json:"closed"`
}

// SubmissionStats summarises both spreadsheet ranges for the dashboard.
type SubmissionStats struct {
	TotalContacts     int                 `json:"totalContacts"`
	TotalFreeTrials   int                 `json:"totalFreeTrials"`
	TotalSubmissions  int                 `json:"totalSubmissions"`
	StatusBreakdown   StatusBreakdown     `json:"statusBreakdown"`
	RecentSubmissions []entity.Submission `json:"recentSubmissions"`
	ServiceBreakdown  map[string]int      `json:"serviceBreakdown"`
}

// AllSubmissions is returned when no submission type is requested.
type AllSubmissions struct {
	Contacts        []entity.ContactSubmission `json:"contacts"`
	FreeTrials      []entity.FreeTrialRequest  `json:"freeTrials"`
	TotalContacts   int                        `json:"totalContacts"`
	TotalFreeTrials int                        `json:"totalFreeTrials"`
}

// StatusUpdateResult echoes what the spreadsheet reported for a status write.
type StatusUpdateResult struct {
	SpreadsheetID  string `json:"spreadsheetId,omitempty"`
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

// SheetsDiagnostics is the payload of GET /api/test-google-sheets.
type SheetsDiagnostics struct {
	TotalSubmissions int             `json:"totalSubmissions"`
	TotalContacts    int             `json:"totalContacts"`
	TotalFreeTrials  int             `json:"totalFreeTrials"`
	StatusBreakdown  StatusBreakdown `json:"statusBreakdown"`
}

// SheetsConfigSummary describes the spreadsheet configuration without secrets.
type SheetsConfigSummary struct {
	SheetID             string `json:"sheetId"`
	ServiceAccountEmail string `json:"serviceAccountEmail"`
	HasPrivateKey       bool   `json:"hasPrivateKey"`
	HasClientID         bool   `json:"hasClientId"`
}
