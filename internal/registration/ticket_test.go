package registration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaidRegistration(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	svc, st, _ := setupServiceTest(t)
	_, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmFromWebhook(context.Background(), completedEvent("cs_test_123"), "valid"))
	return svc, st
}

func TestTicketPayload_SignedFormat(t *testing.T) {
	svc, _ := setupPaidRegistration(t)

	payload, err := svc.TicketPayload(context.Background(), "cs_test_123")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "registration:1;session:cs_test_123;signature:"))
}

func TestTicketPayload_RequiresPaid(t *testing.T) {
	svc, _, _ := setupServiceTest(t)
	_, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.TicketPayload(context.Background(), "cs_test_123")

	require.ErrorIs(t, err, ErrNotPaid)
}

func TestTicketPayload_DisabledWithoutSecret(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st, newFakeProvider("cs_test_123"), "https://tickets.example.com", "Spring Gala", "")

	_, err := svc.TicketPayload(context.Background(), "cs_test_123")

	require.ErrorIs(t, err, ErrTicketingDisabled)
	assert.False(t, svc.TicketingEnabled())
}

func TestCheckIn_Roundtrip(t *testing.T) {
	svc, st := setupPaidRegistration(t)

	payload, err := svc.TicketPayload(context.Background(), "cs_test_123")
	require.NoError(t, err)

	reg, err := svc.CheckIn(context.Background(), payload)

	require.NoError(t, err)
	assert.True(t, reg.CheckedIn)
	assert.True(t, st.get(1).CheckedIn)
}

func TestCheckIn_RejectsTamperedSignature(t *testing.T) {
	svc, st := setupPaidRegistration(t)

	payload, err := svc.TicketPayload(context.Background(), "cs_test_123")
	require.NoError(t, err)
	tampered := payload[:len(payload)-4] + "0000"

	_, err = svc.CheckIn(context.Background(), tampered)

	require.ErrorIs(t, err, ErrBadTicket)
	assert.False(t, st.get(1).CheckedIn)
}

func TestCheckIn_RejectsGarbage(t *testing.T) {
	svc, _ := setupPaidRegistration(t)

	for _, data := range []string{"", "nonsense", "registration:1;session:;signature:"} {
		_, err := svc.CheckIn(context.Background(), data)
		require.ErrorIs(t, err, ErrBadTicket)
	}
}

func TestCheckIn_SecondScanConflicts(t *testing.T) {
	svc, _ := setupPaidRegistration(t)

	payload, err := svc.TicketPayload(context.Background(), "cs_test_123")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), payload)
	require.ErrorIs(t, err, ErrAlreadyCheckedIn)
}
