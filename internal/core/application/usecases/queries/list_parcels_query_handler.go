package queries

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParcelsQueryHandler reads pages of parcels from the database,
// restricted to the caller's visibility scope. Uses direct SQL for read
// performance in the CQRS pattern.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListParcelsQueryHandler creates a handler for parcel listing queries.
// Requires a GORM database connection for query execution.
func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle executes the query and returns one page of parcels plus the total
// matching count. A scoped caller with no visible agencies gets an empty
// page without touching the database.
func (h ListParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListParcelsQuery,
) (ListParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListParcelsQueryResponse{}, err
	}

	response := ListParcelsQueryResponse{Parcels: make([]ParcelRow, 0)}

	scope := query.Scope()
	if !scope.All && len(scope.AgencyIDs) == 0 {
		return response, nil
	}

	where := "1 = 1"
	args := make([]any, 0, 2)

	if status, filtered := statusForReadiness(query.ReadyFor()); filtered {
		where += " AND status = ?"
		args = append(args, int(status))
	}

	if !scope.All {
		agencyIDs := make([]uuid.UUID, 0, len(scope.AgencyIDs))
		for _, id := range scope.AgencyIDs {
			agencyIDs = append(agencyIDs, id.Bytes())
		}
		where += " AND agency_id IN ?"
		args = append(args, agencyIDs)
	}

	err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM parcels WHERE "+where, args...,
	).Scan(&response.Total).Error
	if err != nil {
		return ListParcelsQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT id, order_id, agency_id, hbl, status FROM parcels WHERE "+where+
			" ORDER BY hbl LIMIT ? OFFSET ?",
		append(args, query.Limit(), offset)...,
	).Rows()
	if err != nil {
		return ListParcelsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row ParcelRow
		var id, orderID, agencyID uuid.UUID
		var status int

		err = rows.Scan(&id, &orderID, &agencyID, &row.HBL, &status)
		if err != nil {
			return ListParcelsQueryResponse{}, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListParcelsQueryResponse{}, err
		}
		if row.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return ListParcelsQueryResponse{}, err
		}
		if row.AgencyID, err = kernel.UUIDFromBytes(agencyID[:]); err != nil {
			return ListParcelsQueryResponse{}, err
		}
		row.Status = parcel.Status(status)
		response.Parcels = append(response.Parcels, row)
	}

	if err = rows.Err(); err != nil {
		return ListParcelsQueryResponse{}, err
	}

	return response, nil
}

// statusForReadiness maps a readiness filter to the parcel status it selects.
func statusForReadiness(readyFor ReadyFor) (parcel.Status, bool) {
	switch readyFor {
	case ReadyForDispatch:
		return parcel.InPallet, true
	case ReadyForContainer:
		return parcel.ReceivedInDispatch, true
	default:
		return parcel.UnknownStatus, false
	}
}
