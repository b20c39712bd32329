package commands

import (
	"errors"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrApplyStatusEventsCommandIsNotConstructed = errors.New(
	"ApplyStatusEventsCommand must be created via NewApplyStatusEventsCommand constructor",
)

// maxStatusEventBatchSize caps one backfill batch so the transaction stays
// short under carrier feed bursts.
const maxStatusEventBatchSize = 1000

// ApplyStatusEventsCommand represents a request to drain one batch of staged
// carrier status reports and apply them to their parcels.
type ApplyStatusEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewApplyStatusEventsCommand creates a command to apply one batch of staged
// status events.
func NewApplyStatusEventsCommand(batchSize int) (ApplyStatusEventsCommand, error) {
	cmd := ApplyStatusEventsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchSize(batchSize); err != nil {
		return ApplyStatusEventsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyStatusEventsCommand) Validate() error {
	return c.guard.Validate(ErrApplyStatusEventsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of events drained in one run.
func (c ApplyStatusEventsCommand) BatchSize() int {
	return c.batchSize
}

func (c *ApplyStatusEventsCommand) setBatchSize(batchSize int) error {
	if batchSize < 1 || batchSize > maxStatusEventBatchSize {
		return errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxStatusEventBatchSize)
	}
	c.batchSize = batchSize
	return nil
}
