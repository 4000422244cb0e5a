package services

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) Create(ctx context.Context, params model.CreateEventParams, creatorID int) (*model.EventDetail, error) {
	args := m.Called(ctx, params, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventDetail), args.Error(1)
}

func (m *EventServiceMock) List(ctx context.Context, sub access.Subject, filters model.EventFilters) ([]*model.Event, error) {
	args := m.Called(ctx, sub, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) GetByEventID(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventDetail, error) {
	args := m.Called(ctx, sub, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventDetail), args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, sub access.Subject, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, sub, eventID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Delete(ctx context.Context, sub access.Subject, eventID uuid.UUID) error {
	args := m.Called(ctx, sub, eventID)
	return args.Error(0)
}

func (m *EventServiceMock) Join(ctx context.Context, eventID uuid.UUID, userID int) (*model.Event, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) JoinByCode(ctx context.Context, code string, userID int) (*model.Event, error) {
	args := m.Called(ctx, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Leave(ctx context.Context, eventID uuid.UUID, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *EventServiceMock) Participants(ctx context.Context, sub access.Subject, eventID uuid.UUID) ([]*model.Participant, error) {
	args := m.Called(ctx, sub, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *EventServiceMock) ValidateInviteCode(ctx context.Context, code string) (*model.InviteCodeValidation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InviteCodeValidation), args.Error(1)
}

func (m *EventServiceMock) Stats(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventStats, error) {
	args := m.Called(ctx, sub, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventStats), args.Error(1)
}
