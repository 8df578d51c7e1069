package registration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gatewood-events/ticketline/internal/models"
	"github.com/gatewood-events/ticketline/internal/store"
)

var (
	ErrTicketingDisabled = errors.New("ticket signing is not configured")
	ErrNotPaid           = errors.New("registration is not paid")
	ErrBadTicket         = errors.New("invalid ticket data")
	ErrAlreadyCheckedIn  = errors.New("ticket already checked in")
)

// TicketingEnabled reports whether a signing secret is configured; without
// one the QR and check-in surfaces stay off.
func (s *Service) TicketingEnabled() bool {
	return s.ticketSecret != ""
}

// TicketPayload returns the signed door-ticket string for a paid
// registration, suitable for QR encoding. Format:
// registration:<id>;session:<session id>;signature:<hex hmac>.
func (s *Service) TicketPayload(ctx context.Context, sessionID string) (string, error) {
	if !s.TicketingEnabled() {
		return "", ErrTicketingDisabled
	}

	reg, err := s.store.FindBySessionID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !reg.Paid() {
		return "", ErrNotPaid
	}

	return fmt.Sprintf("registration:%d;session:%s;signature:%s",
		reg.ID, sessionID, s.ticketSignature(reg.ID, sessionID)), nil
}

// CheckIn validates a scanned ticket payload and flips the registration to
// checked in. The registration must be paid and not yet checked in.
func (s *Service) CheckIn(ctx context.Context, qrData string) (*models.Registration, error) {
	if !s.TicketingEnabled() {
		return nil, ErrTicketingDisabled
	}

	regID, sessionID, signature, err := parseTicketPayload(qrData)
	if err != nil {
		return nil, err
	}

	expected := s.ticketSignature(regID, sessionID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrBadTicket
	}

	reg, err := s.store.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBadTicket
		}
		return nil, err
	}
	if reg.ID != regID {
		return nil, ErrBadTicket
	}
	if !reg.Paid() {
		return nil, ErrNotPaid
	}

	updated, err := s.store.MarkCheckedInBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrAlreadyCheckedIn
	}

	reg.CheckedIn = true
	return reg, nil
}

func (s *Service) ticketSignature(regID uint, sessionID string) string {
	h := hmac.New(sha256.New, []byte(s.ticketSecret))
	fmt.Fprintf(h, "%d:%s", regID, sessionID)
	return hex.EncodeToString(h.Sum(nil))
}

func parseTicketPayload(qrData string) (uint, string, string, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 ||
		!strings.HasPrefix(parts[0], "registration:") ||
		!strings.HasPrefix(parts[1], "session:") ||
		!strings.HasPrefix(parts[2], "signature:") {
		return 0, "", "", ErrBadTicket
	}

	var regID uint
	if _, err := fmt.Sscanf(strings.TrimPrefix(parts[0], "registration:"), "%d", &regID); err != nil {
		return 0, "", "", ErrBadTicket
	}
	sessionID := strings.TrimPrefix(parts[1], "session:")
	signature := strings.TrimPrefix(parts[2], "signature:")
	if sessionID == "" || signature == "" {
		return 0, "", "", ErrBadTicket
	}
	return regID, sessionID, signature, nil
}
