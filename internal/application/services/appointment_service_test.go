package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/admin-console/internal/adapters/store"
	"github.com/clinicbook/admin-console/internal/application/services"
	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// Mocks

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Subscribe(ctx context.Context, collection string, filter providers.Predicate) (*providers.Subscription, error) {
	args := m.Called(ctx, collection, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.Subscription), args.Error(1)
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (providers.Document, error) {
	args := m.Called(ctx, collection, id)
	return args.Get(0).(providers.Document), args.Error(1)
}

func (m *MockDocumentStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	args := m.Called(ctx, collection, id, patch)
	return args.Error(0)
}

func (m *MockDocumentStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockDocumentStore) Close() error {
	return nil
}

func seedAppointment(t *testing.T, s *store.MemoryStore, fields map[string]any) string {
	t.Helper()
	id, err := s.Add(context.Background(), providers.CollectionAppointments, fields)
	require.NoError(t, err)
	return id
}

func appointmentStatus(t *testing.T, s *store.MemoryStore, id string) entities.AppointmentStatus {
	t.Helper()
	doc, err := s.Get(context.Background(), providers.CollectionAppointments, id)
	require.NoError(t, err)
	return entities.AppointmentFromDocument(doc.ID, doc.Fields).Status
}

func TestAppointmentService_ConfirmFromPending(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "pending"})

	require.NoError(t, service.Confirm(ctx, id))
	assert.Equal(t, entities.AppointmentConfirmed, appointmentStatus(t, s, id))
}

func TestAppointmentService_ConfirmFromAwaitingApproval(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "awaitingApproval"})

	require.NoError(t, service.Confirm(ctx, id))
	assert.Equal(t, entities.AppointmentConfirmed, appointmentStatus(t, s, id))
}

func TestAppointmentService_ConfirmGuardsTerminalStates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "completed"})

	err := service.Confirm(ctx, id)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, entities.AppointmentCompleted, appointmentStatus(t, s, id), "guarded failure writes nothing")
}

func TestAppointmentService_ConfirmMissingAppointment(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	err := service.Confirm(ctx, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestAppointmentService_RejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "pending"})

	err := service.Reject(ctx, id, "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, entities.AppointmentPending, appointmentStatus(t, s, id))
}

func TestAppointmentService_RejectWritesStatusAndReasonOnly(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{
		"status":      "pending",
		"patientName": "Sara Rahman",
		"notes":       "bring reports",
	})

	require.NoError(t, service.Reject(ctx, id, "slot no longer available"))

	doc, err := s.Get(ctx, providers.CollectionAppointments, id)
	require.NoError(t, err)
	appt := entities.AppointmentFromDocument(doc.ID, doc.Fields)
	assert.Equal(t, entities.AppointmentRejected, appt.Status)
	assert.Equal(t, "slot no longer available", appt.RejectionReason)
	assert.Equal(t, "Sara Rahman", appt.PatientName)
	assert.Equal(t, "bring reports", appt.Notes)
}

func TestAppointmentService_CompleteRequiresConfirmed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	confirmed := seedAppointment(t, s, map[string]any{"status": "confirmed"})
	pending := seedAppointment(t, s, map[string]any{"status": "pending"})

	require.NoError(t, service.Complete(ctx, confirmed))
	assert.Equal(t, entities.AppointmentCompleted, appointmentStatus(t, s, confirmed))

	err := service.Complete(ctx, pending)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAppointmentService_SetStatusBypassesGuards(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "completed"})

	// The raw override allows transitions the guarded actions refuse.
	require.NoError(t, service.SetStatus(ctx, id, entities.AppointmentCancelled))
	assert.Equal(t, entities.AppointmentCancelled, appointmentStatus(t, s, id))
}

func TestAppointmentService_SetStatusRejectsUnknownValue(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	service := services.NewAppointmentService(s, nil)

	id := seedAppointment(t, s, map[string]any{"status": "pending"})

	err := service.SetStatus(ctx, id, "archived")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, entities.AppointmentPending, appointmentStatus(t, s, id))
}

func TestAppointmentService_WriteFailureIsTransitionFailed(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockDocumentStore)
	service := services.NewAppointmentService(mockStore, nil)

	mockStore.On("Get", mock.Anything, providers.CollectionAppointments, "appt-1").
		Return(providers.Document{ID: "appt-1", Fields: map[string]any{"status": "pending"}}, nil)
	mockStore.On("Update", mock.Anything, providers.CollectionAppointments, "appt-1", mock.Anything).
		Return(apperrors.NewStoreError("write failed", errors.New("connection reset")))

	err := service.Confirm(ctx, "appt-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTransition))
	mockStore.AssertExpectations(t)
}

func TestAppointmentService_WriteFailureNotRetried(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockDocumentStore)
	service := services.NewAppointmentService(mockStore, nil)

	mockStore.On("Update", mock.Anything, providers.CollectionAppointments, "appt-1", mock.Anything).
		Return(apperrors.NewStoreError("write failed", nil)).Once()

	err := service.SetStatus(ctx, "appt-1", entities.AppointmentConfirmed)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTransition))
	mockStore.AssertNumberOfCalls(t, "Update", 1)
}
