package services

import (
	"time"

	"github.com/nutrilog/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockEntryStore struct {
	mock.Mock
}

func (m *MockEntryStore) AppendEntry(entry *models.LedgerEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockEntryStore) EntriesForRange(userID string, start, end time.Time) ([]models.LedgerEntry, error) {
	args := m.Called(userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *MockEntryStore) DeleteEntry(id string) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockEntryStore) AppendWater(entry *models.WaterEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockEntryStore) WaterTotal(userID, dateKey string) (int, error) {
	args := m.Called(userID, dateKey)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryStore) Profile(userID string) (*models.UserProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}
