package commands

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/retry"
)

// ApplyStatusEventsResult summarizes one backfill run.
type ApplyStatusEventsResult struct {
	// Drained is the number of staged events read from the staging table.
	Drained int

	// Applied is the number of events that changed a parcel.
	Applied int

	// Skipped counts events that could not change a parcel: orphan HBLs and
	// reports against already-delivered parcels. They are still marked
	// applied so the batch never loops on them.
	Skipped int
}

// ApplyStatusEventsCommandHandler drains the staging table carrier feeds are
// imported into and applies each event to its parcel.
//
// Draining, parcel updates and the applied markers form one transaction, so
// a crash mid-batch re-applies the whole batch rather than losing events.
// The batch is retried as a unit on transient store failures. Order-changed
// notifications go out only after the commit.
type ApplyStatusEventsCommandHandler struct {
	uowFactory StatusUoWFactory
	publisher  ports.OrderStatusEventPublisher
	aggregator services.OrderStatusAggregator
	policy     retry.Policy
}

// NewApplyStatusEventsCommandHandler creates a handler for status event
// backfill runs.
func NewApplyStatusEventsCommandHandler(
	uowFactory StatusUoWFactory,
	publisher ports.OrderStatusEventPublisher,
	policy retry.Policy,
) ApplyStatusEventsCommandHandler {
	return ApplyStatusEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		aggregator: services.NewOrderStatusAggregator(),
		policy:     policy,
	}
}

// Handle drains one batch of staged events and publishes an order-changed
// notification for every order whose parcels moved.
func (h *ApplyStatusEventsCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyStatusEventsCommand,
) (ApplyStatusEventsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyStatusEventsResult{}, err
	}

	var result ApplyStatusEventsResult
	changedOrders := make(map[kernel.UUID]struct{})

	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		result = ApplyStatusEventsResult{}
		clear(changedOrders)
		return h.applyBatch(ctx, cmd.BatchSize(), &result, changedOrders)
	})
	if err != nil {
		return ApplyStatusEventsResult{}, err
	}

	if err := h.notifyOrders(ctx, changedOrders); err != nil {
		return result, err
	}

	return result, nil
}

// applyBatch drains and applies one batch inside a single transaction.
func (h *ApplyStatusEventsCommandHandler) applyBatch(
	ctx context.Context,
	batchSize int,
	result *ApplyStatusEventsResult,
	changedOrders map[kernel.UUID]struct{},
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := uow.StatusEventRepository().GetUnapplied(ctx, batchSize)
	if err != nil {
		return err
	}
	result.Drained = len(events)
	if len(events) == 0 {
		return uow.Rollback(ctx)
	}

	parcels := uow.ParcelRepository()
	appliedIDs := make([]kernel.UUID, 0, len(events))
	for _, event := range events {
		target, getErr := parcels.GetByHBL(ctx, event.HBL)
		if getErr != nil {
			if errors.Is(getErr, errs.ErrObjectNotFound) {
				// Orphan HBL: the carrier reported a parcel we never created.
				// Mark applied so the feed does not loop on it.
				result.Skipped++
				appliedIDs = append(appliedIDs, event.ID)
				continue
			}
			return getErr
		}

		if applyErr := target.ApplyStatus(event.Status); applyErr != nil {
			if errors.Is(applyErr, parcel.ErrParcelAlreadyDelivered) {
				result.Skipped++
				appliedIDs = append(appliedIDs, event.ID)
				continue
			}
			return applyErr
		}

		if updateErr := parcels.Update(ctx, target); updateErr != nil {
			return updateErr
		}

		result.Applied++
		appliedIDs = append(appliedIDs, event.ID)
		changedOrders[target.OrderID()] = struct{}{}
	}

	if err = uow.StatusEventRepository().MarkApplied(ctx, appliedIDs); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// notifyOrders recomputes each changed order's summary and publishes it.
// Runs after the commit; a publish failure does not undo the batch.
func (h *ApplyStatusEventsCommandHandler) notifyOrders(
	ctx context.Context,
	changedOrders map[kernel.UUID]struct{},
) error {
	if len(changedOrders) == 0 {
		return nil
	}

	reader := h.uowFactory.Create().ParcelRepository()
	for orderID := range changedOrders {
		orderParcels, err := reader.GetAllByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		statuses := make([]parcel.Status, 0, len(orderParcels))
		for _, p := range orderParcels {
			statuses = append(statuses, p.Status())
		}

		summary, err := h.aggregator.Aggregate(statuses)
		if err != nil {
			return err
		}

		if err = h.publisher.PublishOrderChanged(ctx, orderID, summary.OrderStatus); err != nil {
			return err
		}
	}

	return nil
}
