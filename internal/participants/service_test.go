package participants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Participant), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]Participant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Participant), args.Error(1)
}

func (m *mockRepository) SetCertificate(ctx context.Context, id uuid.UUID, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

func TestCreateParticipant(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*participants.Participant")).Return(nil)

	p, err := service.Create(ctx, &CreateParticipantRequest{
		Name:          "Ana Pérez",
		Email:         "ana@example.com",
		Course:        "Curso de PHP Avanzado",
		DateCompleted: "2024-03-15",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Ana Pérez", p.Name)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), p.DateCompleted)
	repo.AssertExpectations(t)
}

func TestCreateParticipantInvalidDate(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo, zap.NewNop())

	_, err := service.Create(context.Background(), &CreateParticipantRequest{
		Name:          "Ana Pérez",
		Email:         "ana@example.com",
		Course:        "Curso de PHP Avanzado",
		DateCompleted: "15/03/2024",
	})

	assert.ErrorContains(t, err, "invalid completion date")
	repo.AssertNotCalled(t, "Create")
}

func TestCreateParticipantRepositoryFailure(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(assert.AnError)

	_, err := service.Create(ctx, &CreateParticipantRequest{
		Name:          "Ana Pérez",
		Email:         "ana@example.com",
		Course:        "Curso de PHP Avanzado",
		DateCompleted: "2024-03-15",
	})

	assert.ErrorContains(t, err, "failed to create participant")
}

func TestListParticipants(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("List", ctx).Return([]Participant{
		{ID: uuid.New(), Name: "Ana Pérez"},
		{ID: uuid.New(), Name: "Bob Smith"},
	}, nil)

	list, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, list, 2)
}
