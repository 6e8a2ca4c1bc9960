// Package sheets mirrors bookings and questions into a shared Google
// spreadsheet via a service account.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Sheet ranges the clinic spreadsheet uses.
const (
	appointmentRange = "Appointments!A:I"
	questionRange    = "Questions!A:F"
)

// Service appends rows to the clinic spreadsheet. A nil-configured
// service silently skips every append.
type Service struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	logger        *logging.Logger
	now           func() time.Time
}

// NewService authenticates with the given service-account credentials.
// Private keys pasted through env files often carry literal \n sequences;
// callers are expected to have unescaped them already.
func NewService(ctx context.Context, email, privateKey, spreadsheetID string, logger *logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if email == "" || privateKey == "" || spreadsheetID == "" {
		logger.Info("google sheets not configured, appends will be skipped")
		return &Service{logger: logger, now: time.Now}, nil
	}

	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Service{svc: svc, spreadsheetID: spreadsheetID, logger: logger, now: time.Now}, nil
}

// Configured reports whether appends will actually reach a spreadsheet.
func (s *Service) Configured() bool { return s.svc != nil }

// AppendAppointment adds one booking row.
func (s *Service) AppendAppointment(ctx context.Context, fullName, phone, email, specialty, doctorName string, date time.Time, timeOfDay, notes, status string) error {
	row := []any{
		s.now().Format("02/01/2006 15:04"),
		fullName,
		phone,
		email,
		specialty,
		doctorName,
		date.Format("02/01/2006"),
		timeOfDay,
		fmt.Sprintf("%s | %s", status, notes),
	}
	return s.append(ctx, appointmentRange, row)
}

// AppendQuestion adds one question row.
func (s *Service) AppendQuestion(ctx context.Context, fullName, phone, email, question string, createdAt time.Time) error {
	row := []any{
		createdAt.Format("02/01/2006 15:04"),
		fullName,
		phone,
		email,
		question,
		"pending",
	}
	return s.append(ctx, questionRange, row)
}

func (s *Service) append(ctx context.Context, sheetRange string, row []any) error {
	if !s.Configured() {
		s.logger.Debug("sheets append skipped, not configured", "range", sheetRange)
		return nil
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", strings.SplitN(sheetRange, "!", 2)[0], err)
	}
	return nil
}
