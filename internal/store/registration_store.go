package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/gatewood-events/ticketline/internal/models"
)

var ErrNotFound = errors.New("registration not found")

// RegistrationStore is the persistence boundary for registrations. The paid
// and checked-in transitions are conditional updates keyed by checkout
// session id so that concurrent confirmers commute; a zero-row match is a
// successful no-op, reported through the bool return.
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	AttachSessionID(ctx context.Context, id uint, sessionID string) error
	MarkPaidBySessionID(ctx context.Context, sessionID string) (bool, error)
	MarkCheckedInBySessionID(ctx context.Context, sessionID string) (bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Registration, error)
	ListNewestFirst(ctx context.Context) ([]models.Registration, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewRegistrationStore(db *gorm.DB) RegistrationStore {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, reg *models.Registration) error {
	if err := s.db.WithContext(ctx).Create(reg).Error; err != nil {
		return errors.Wrap(err, "create registration")
	}
	return nil
}

func (s *gormStore) AttachSessionID(ctx context.Context, id uint, sessionID string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ? AND stripe_session_id IS NULL", id).
		Update("stripe_session_id", sessionID)
	if res.Error != nil {
		return errors.Wrap(res.Error, "attach session id")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) MarkPaidBySessionID(ctx context.Context, sessionID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("stripe_session_id = ? AND payment_status = ?", sessionID, models.StatusPending).
		Update("payment_status", models.StatusPaid)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "mark paid")
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) MarkCheckedInBySessionID(ctx context.Context, sessionID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("stripe_session_id = ? AND payment_status = ? AND checked_in = false", sessionID, models.StatusPaid).
		Update("checked_in", true)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "mark checked in")
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) FindBySessionID(ctx context.Context, sessionID string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find by session id")
	}
	return &reg, nil
}

func (s *gormStore) ListNewestFirst(ctx context.Context) ([]models.Registration, error) {
	var regs []models.Registration
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&regs).Error; err != nil {
		return nil, errors.Wrap(err, "list registrations")
	}
	return regs, nil
}
