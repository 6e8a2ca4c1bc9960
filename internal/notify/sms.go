// Package notify sends transactional SMS through Twilio's REST API.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

var tracer = otel.Tracer("notify")

// Service posts SMS messages using Twilio's REST API. Every send is a
// single attempt; callers treat failures as best effort.
type Service struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewService builds an SMS sender. Configured reports false when the
// Twilio credentials are missing, in which case sends are skipped.
func NewService(accountSID, authToken, from string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Configured reports whether Twilio credentials are present.
func (s *Service) Configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.from != ""
}

// NormalizePhone converts a local Vietnamese number (leading 0) to E.164
// +84 form. Numbers already carrying a plus are left untouched.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "0") {
		return "+84" + phone[1:]
	}
	return phone
}

// SendAppointmentConfirmation texts the booking confirmation.
func (s *Service) SendAppointmentConfirmation(ctx context.Context, phone, fullName string, date time.Time, timeOfDay, specialty string) error {
	body := fmt.Sprintf(
		"Phong Kham Da Khoa Minh Giang: Chao %s, lich hen kham %s cua ban vao %s luc %s da duoc ghi nhan. Chung toi se lien he xac nhan som nhat. Hotline: 037 845 6839.",
		fullName, specialty, date.Format("02/01/2006"), timeOfDay,
	)
	return s.send(ctx, phone, body)
}

// SendQuestionAck texts the received-your-question acknowledgement.
func (s *Service) SendQuestionAck(ctx context.Context, phone, fullName string) error {
	body := fmt.Sprintf(
		"Phong Kham Da Khoa Minh Giang: Chao %s, cau hoi cua ban da duoc tiep nhan. Chung toi se phan hoi trong thoi gian som nhat.",
		fullName,
	)
	return s.send(ctx, phone, body)
}

func (s *Service) send(ctx context.Context, phone, body string) error {
	if !s.Configured() {
		s.logger.Debug("sms skipped, twilio not configured")
		return nil
	}
	to := NormalizePhone(phone)
	if to == "" {
		return errors.New("notify: to required")
	}

	ctx, span := tracer.Start(ctx, "notify.sms.send")
	defer span.End()
	span.SetAttributes(attribute.String("sms.to", to))

	payload := url.Values{}
	payload.Set("To", to)
	payload.Set("From", s.from)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notify: twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	s.logger.Info("sms sent", "to", to)
	return nil
}
