package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ignite-agency/website/api/internal/dto"
	"github.com/ignite-agency/website/api/internal/entity"
	"github.com/ignite-agency/website/api/internal/sheets"
)

var (
	// ErrSheetsNotConfigured is returned by read-side operations when no spreadsheet is set up.
	ErrSheetsNotConfigured = errors.New("google sheets not configured")
	// ErrNoData is returned when an export would produce no rows.
	ErrNoData = errors.New("no data to export")
)

// Export scopes accepted by Export.
const (
	ExportContact   = "contact"
	ExportFreeTrial = "free-trial"
	ExportAll       = "all"
)

const (
	recentSubmissionsLimit = 10
	unknownService         = "Unknown"

	// Sheet rows are 1-based and row 1 holds the header.
	firstDataRow = 2
)

// Header rows written by InitializeSheets. Column order is the storage order.
var (
	ContactHeaders   = []string{"Timestamp", "Name", "Email", "Phone", "Company", "Service", "Budget", "Message", "Language", "Status", "Type"}
	FreeTrialHeaders = []string{"Timestamp", "Name", "Email", "Service", "Description", "Language", "Status"}
)

// statusColumn is the sheet column holding the status of each kind.
var statusColumn = map[entity.Kind]string{
	entity.KindContact:   "J",
	entity.KindFreeTrial: "G",
}

// SheetsClient is the subset of the Sheets API the lead services need.
type SheetsClient interface {
	AppendRow(ctx context.Context, rng string, row []string) error
	ReadRows(ctx context.Context, rng string) ([][]string, error)
	UpdateRow(ctx context.Context, rng string, row []string) (sheets.UpdateResult, error)
}

var _ SheetsClient = (*sheets.Client)(nil)

// SheetRanges names the A1 range of each kind's table.
type SheetRanges struct {
	Contact   string
	FreeTrial string
}

// For returns the range configured for kind.
func (r SheetRanges) For(kind entity.Kind) string {
	if kind == entity.KindFreeTrial {
		return r.FreeTrial
	}
	return r.Contact
}

// SubmissionsService serves the dashboard from the spreadsheet mirror.
type SubmissionsService struct {
	client SheetsClient
	ranges SheetRanges
}

// NewSubmissionsService creates a new instance of SubmissionsService. A nil
// client makes every operation fail with ErrSheetsNotConfigured.
func NewSubmissionsService(client SheetsClient, ranges SheetRanges) *SubmissionsService {
	return &SubmissionsService{client: client, ranges: ranges}
}

// Configured reports whether a spreadsheet client is available.
func (s *SubmissionsService) Configured() bool {
	return s != nil && s.client != nil
}

// Contacts returns every contact row after the header.
func (s *SubmissionsService) Contacts(ctx context.Context) ([]entity.ContactSubmission, error) {
	rows, err := s.readData(ctx, entity.KindContact)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ContactSubmission, 0, len(rows))
	for i, row := range rows {
		out = append(out, entity.ContactSubmission{
			ID:        i + 1,
			RowIndex:  i,
			Timestamp: cell(row, 0, ""),
			Name:      cell(row, 1, ""),
			Email:     cell(row, 2, ""),
			Phone:     cell(row, 3, ""),
			Company:   cell(row, 4, ""),
			Service:   cell(row, 5, ""),
			Budget:    cell(row, 6, ""),
			Message:   cell(row, 7, ""),
			Language:  cell(row, 8, ""),
			Status:    entity.Status(cell(row, 9, string(entity.StatusNew))),
			Type:      cell(row, 10, string(entity.KindContact)),
		})
	}
	return out, nil
}

// FreeTrials returns every free-trial row after the header.
func (s *SubmissionsService) FreeTrials(ctx context.Context) ([]entity.FreeTrialRequest, error) {
	rows, err := s.readData(ctx, entity.KindFreeTrial)
	if err != nil {
		return nil, err
	}
	out := make([]entity.FreeTrialRequest, 0, len(rows))
	for i, row := range rows {
		out = append(out, entity.FreeTrialRequest{
			ID:          i + 1,
			RowIndex:    i,
			Timestamp:   cell(row, 0, ""),
			Name:        cell(row, 1, ""),
			Email:       cell(row, 2, ""),
			Service:     cell(row, 3, ""),
			Description: cell(row, 4, ""),
			Language:    cell(row, 5, ""),
			Status:      entity.Status(cell(row, 6, string(entity.StatusNew))),
		})
	}
	return out, nil
}

// All reads both tables concurrently.
func (s *SubmissionsService) All(ctx context.Context) (dto.AllSubmissions, error) {
	if !s.Configured() {
		return dto.AllSubmissions{}, ErrSheetsNotConfigured
	}

	var (
		contacts   []entity.ContactSubmission
		freeTrials []entity.FreeTrialRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = s.Contacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		freeTrials, err = s.FreeTrials(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.AllSubmissions{}, err
	}

	return dto.AllSubmissions{
		Contacts:        contacts,
		FreeTrials:      freeTrials,
		TotalContacts:   len(contacts),
		TotalFreeTrials: len(freeTrials),
	}, nil
}

// Stats aggregates counts over both tables.
func (s *SubmissionsService) Stats(ctx context.Context) (dto.SubmissionStats, error) {
	all, err := s.All(ctx)
	if err != nil {
		return dto.SubmissionStats{}, err
	}

	records := make([]entity.Submission, 0, all.TotalContacts+all.TotalFreeTrials)
	for _, c := range all.Contacts {
		records = append(records, c)
	}
	for _, f := range all.FreeTrials {
		records = append(records, f)
	}

	stats := dto.SubmissionStats{
		TotalContacts:    all.TotalContacts,
		TotalFreeTrials:  all.TotalFreeTrials,
		TotalSubmissions: len(records),
		ServiceBreakdown: make(map[string]int),
	}
	for _, rec := range records {
		switch rec.CurrentStatus() {
		case entity.StatusNew:
			stats.StatusBreakdown.New++
		case entity.StatusContacted:
			stats.StatusBreakdown.Contacted++
		case entity.StatusConverted:
			stats.StatusBreakdown.Converted++
		case entity.StatusClosed:
			stats.StatusBreakdown.Closed++
		}

		service := rec.ServiceName()
		if service == "" {
			service = unknownService
		}
		stats.ServiceBreakdown[service]++
	}

	recent := make([]entity.Submission, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmittedAt().After(recent[j].SubmittedAt())
	})
	if len(recent) > recentSubmissionsLimit {
		recent = recent[:recentSubmissionsLimit]
	}
	stats.RecentSubmissions = recent

	return stats, nil
}

// Export renders the requested tables as CSV. The header comes from the first
// record; each record is written in its own field order.
func (s *SubmissionsService) Export(ctx context.Context, scope string) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrSheetsNotConfigured
	}

	var records []entity.Submission
	if scope == ExportContact || scope == ExportAll {
		contacts, err := s.Contacts(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range contacts {
			records = append(records, c)
		}
	}
	if scope == ExportFreeTrial || scope == ExportAll {
		freeTrials, err := s.FreeTrials(ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range freeTrials {
			records = append(records, f)
		}
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	return encodeCSV(records)
}

func encodeCSV(records []entity.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	first := records[0].Fields()
	header := make([]string, len(first))
	for i, f := range first {
		header[i] = f.Name
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		fields := rec.Fields()
		line := make([]string, len(fields))
		for i, f := range fields {
			line[i] = f.Value
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// UpdateStatus writes status into the single status cell of the row at
// rowIndex. rowIndex is positional: if rows were inserted or removed since
// the caller read the table, a different record is updated.
func (s *SubmissionsService) UpdateStatus(ctx context.Context, kind entity.Kind, rowIndex int, status entity.Status) (dto.StatusUpdateResult, error) {
	if !s.Configured() {
		return dto.StatusUpdateResult{}, ErrSheetsNotConfigured
	}
	if !kind.Valid() {
		return dto.StatusUpdateResult{}, fmt.Errorf("unknown submission type %q", kind)
	}

	target := StatusCell(s.ranges, kind, rowIndex)
	result, err := s.client.UpdateRow(ctx, target, []string{string(status)})
	if err != nil {
		return dto.StatusUpdateResult{}, fmt.Errorf("update status: %w", err)
	}

	return dto.StatusUpdateResult{
		SpreadsheetID:  result.SpreadsheetID,
		UpdatedRange:   result.UpdatedRange,
		UpdatedRows:    result.UpdatedRows,
		UpdatedColumns: result.UpdatedColumns,
		UpdatedCells:   result.UpdatedCells,
	}, nil
}

// StatusCell returns the A1 reference of the status cell for rowIndex.
func StatusCell(ranges SheetRanges, kind entity.Kind, rowIndex int) string {
	return sheets.Cell(sheets.SheetName(ranges.For(kind)), statusColumn[kind], rowIndex+firstDataRow)
}

// InitializeSheets writes the header row of both tables.
func (s *SubmissionsService) InitializeSheets(ctx context.Context) error {
	if !s.Configured() {
		return ErrSheetsNotConfigured
	}

	headers := []struct {
		kind    entity.Kind
		lastCol string
		values  []string
	}{
		{entity.KindContact, "K", ContactHeaders},
		{entity.KindFreeTrial, "G", FreeTrialHeaders},
	}
	for _, h := range headers {
		target := sheets.Span(sheets.SheetName(s.ranges.For(h.kind)), "A", h.lastCol, 1)
		if _, err := s.client.UpdateRow(ctx, target, h.values); err != nil {
			return fmt.Errorf("initialize %s headers: %w", h.kind, err)
		}
	}
	return nil
}

func (s *SubmissionsService) readData(ctx context.Context, kind entity.Kind) ([][]string, error) {
	if !s.Configured() {
		return nil, ErrSheetsNotConfigured
	}
	rows, err := s.client.ReadRows(ctx, s.ranges.For(kind))
	if err != nil {
		return nil, fmt.Errorf("read %s submissions: %w", kind, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, idx int, fallback string) string {
	if idx < len(row) && row[idx] != "" {
		return row[idx]
	}
	return fallback
}
