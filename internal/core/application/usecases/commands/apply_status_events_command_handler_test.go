package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByHBL(ctx context.Context, hbl string) (*parcel.Parcel, error) {
	args := m.Called(ctx, hbl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockStatusEventRepository struct{ mock.Mock }

func (m *MockStatusEventRepository) Add(ctx context.Context, event ports.StatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStatusEventRepository) GetUnapplied(ctx context.Context, limit int) ([]ports.StatusEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.StatusEvent), args.Error(1)
}

func (m *MockStatusEventRepository) MarkApplied(ctx context.Context, ids []kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockStatusUoW) StatusEventRepository() ports.StatusEventRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusEventRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusUoW)
}

type MockOrderStatusEventPublisher struct{ mock.Mock }

func (m *MockOrderStatusEventPublisher) PublishOrderChanged(ctx context.Context, orderID kernel.UUID, status parcel.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func stagedEvent(t *testing.T, hbl string, status parcel.Status) ports.StatusEvent {
	t.Helper()
	return ports.StatusEvent{
		ID:         kernel.NewUUID(),
		HBL:        hbl,
		Status:     status,
		RecordedAt: time.Now().UTC(),
	}
}

func mustParcel(t *testing.T, orderID kernel.UUID, hbl string, status parcel.Status) *parcel.Parcel {
	t.Helper()
	p, err := parcel.RestoreParcel(kernel.NewUUID(), orderID, kernel.NewUUID(), hbl, status)
	require.NoError(t, err)
	return p
}

type statusHandlerFixture struct {
	parcels   *MockParcelRepository
	events    *MockStatusEventRepository
	uow       *MockStatusUoW
	factory   *MockStatusUoWFactory
	publisher *MockOrderStatusEventPublisher
	handler   commands.ApplyStatusEventsCommandHandler
}

func newStatusHandlerFixture(t *testing.T) *statusHandlerFixture {
	t.Helper()

	f := &statusHandlerFixture{
		parcels:   new(MockParcelRepository),
		events:    new(MockStatusEventRepository),
		uow:       new(MockStatusUoW),
		factory:   new(MockStatusUoWFactory),
		publisher: new(MockOrderStatusEventPublisher),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("ParcelRepository").Return(f.parcels)
	f.uow.On("StatusEventRepository").Return(f.events)

	policy := retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	f.handler = commands.NewApplyStatusEventsCommandHandler(f.factory, f.publisher, policy)
	return f
}

func TestApplyStatusEventsCommandHandler_Handle_AppliesBatchAndNotifiesOrders(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture(t)

	orderID := kernel.NewUUID()
	first := mustParcel(t, orderID, "HBL-0001", parcel.InAgency)
	second := mustParcel(t, orderID, "HBL-0002", parcel.InAgency)

	batch := []ports.StatusEvent{
		stagedEvent(t, "HBL-0001", parcel.InWarehouse),
		stagedEvent(t, "HBL-0002", parcel.InPallet),
	}

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("GetUnapplied", ctx, 100).Return(batch, nil).Once()
	f.parcels.On("GetByHBL", ctx, "HBL-0001").Return(first, nil).Once()
	f.parcels.On("GetByHBL", ctx, "HBL-0002").Return(second, nil).Once()
	f.parcels.On("Update", ctx, first).Return(nil).Once()
	f.parcels.On("Update", ctx, second).Return(nil).Once()
	f.events.On("MarkApplied", ctx, []kernel.UUID{batch[0].ID, batch[1].ID}).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)

	f.parcels.On("GetAllByOrder", ctx, orderID).Return([]*parcel.Parcel{first, second}, nil).Once()
	// Two parcels in different statuses tie; the order reports the least
	// advanced of them.
	f.publisher.On("PublishOrderChanged", ctx, orderID, parcel.InPallet).Return(nil).Once()

	cmd, err := commands.NewApplyStatusEventsCommand(100)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Drained)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, parcel.InWarehouse, first.Status())
	assert.Equal(t, parcel.InPallet, second.Status())

	f.publisher.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestApplyStatusEventsCommandHandler_Handle_OrphanHBL_SkippedButMarked(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture(t)

	orphan := stagedEvent(t, "HBL-GONE", parcel.InWarehouse)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("GetUnapplied", ctx, 50).Return([]ports.StatusEvent{orphan}, nil).Once()
	f.parcels.On("GetByHBL", ctx, "HBL-GONE").
		Return(nil, errs.NewObjectNotFoundError("parcel", "HBL-GONE")).Once()
	f.events.On("MarkApplied", ctx, []kernel.UUID{orphan.ID}).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)

	cmd, err := commands.NewApplyStatusEventsCommand(50)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Drained)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Skipped)

	f.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything, mock.Anything)
	f.events.AssertExpectations(t)
}

func TestApplyStatusEventsCommandHandler_Handle_DeliveredParcel_Skipped(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture(t)

	done := mustParcel(t, kernel.NewUUID(), "HBL-0009", parcel.Delivered)
	late := stagedEvent(t, "HBL-0009", parcel.InWarehouse)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("GetUnapplied", ctx, 50).Return([]ports.StatusEvent{late}, nil).Once()
	f.parcels.On("GetByHBL", ctx, "HBL-0009").Return(done, nil).Once()
	f.events.On("MarkApplied", ctx, []kernel.UUID{late.ID}).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)

	cmd, err := commands.NewApplyStatusEventsCommand(50)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, parcel.Delivered, done.Status(), "delivered is terminal")
	f.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplyStatusEventsCommandHandler_Handle_EmptyBatch(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("GetUnapplied", ctx, 50).Return([]ports.StatusEvent{}, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)

	cmd, err := commands.NewApplyStatusEventsCommand(50)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Drained)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyStatusEventsCommandHandler_Handle_RetriesTransientFailure(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture(t)

	orderID := kernel.NewUUID()
	target := mustParcel(t, orderID, "HBL-0001", parcel.InAgency)
	event := stagedEvent(t, "HBL-0001", parcel.Delivered)

	f.uow.On("Begin", ctx).Return(nil).Twice()
	f.events.On("GetUnapplied", ctx, 50).Return([]ports.StatusEvent{event}, nil).Twice()
	f.parcels.On("GetByHBL", ctx, "HBL-0001").Return(target, nil).Twice()
	f.parcels.On("Update", ctx, target).Return(nil).Twice()
	f.events.On("MarkApplied", ctx, []kernel.UUID{event.ID}).Return(nil).Twice()
	f.uow.On("Commit", ctx).
		Return(errs.NewTransientStoreError(errors.New("serialization failure"))).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)

	f.parcels.On("GetAllByOrder", ctx, orderID).Return([]*parcel.Parcel{target}, nil).Once()
	f.publisher.On("PublishOrderChanged", ctx, orderID, parcel.Delivered).Return(nil).Once()

	cmd, err := commands.NewApplyStatusEventsCommand(50)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied, "the retried attempt is counted once")
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}
