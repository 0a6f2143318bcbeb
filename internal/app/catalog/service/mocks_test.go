package service

import (
	"github.com/stretchr/testify/mock"
)

// mockImageStore мок для ImageStore
// Живет в пакете service, чтобы не создавать цикл импорта с mocks
type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Store(data []byte, owner ImageOwner, ownerSlug string) (string, error) {
	args := m.Called(data, owner, ownerSlug)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Fetch(name string, variant string) ([]byte, error) {
	args := m.Called(name, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockImageStore) Remove(imageURL string) error {
	args := m.Called(imageURL)
	return args.Error(0)
}
