// Package agencyrepo provides data transfer objects and mapping functions for
// agency persistence. The agency table is the backing store for the tree
// walks performed by scoping and by rate inheritance, so the parent and
// forwarder columns are both indexed.
package agencyrepo

import (
	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgencyDTO represents the database structure for persisting agency aggregates.
type AgencyDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"not null"`
	AgencyType  int        `gorm:"not null"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	ForwarderID uuid.UUID  `gorm:"type:uuid;index;not null"`
}

// TableName specifies the database table name for agency entities.
func (AgencyDTO) TableName() string {
	return "agencies"
}

// fromDomain converts an agency domain aggregate to its database representation.
func fromDomain(aggregate *agency.Agency) AgencyDTO {
	var parentID *uuid.UUID
	if id := aggregate.ParentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	return AgencyDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		AgencyType:  int(aggregate.AgencyType()),
		ParentID:    parentID,
		ForwarderID: aggregate.ForwarderID().Bytes(),
	}
}

// toDomain converts a database DTO to an agency domain aggregate.
func toDomain(dto AgencyDTO) (*agency.Agency, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	forwarderID, err := kernel.UUIDFromBytes(dto.ForwarderID[:])
	if err != nil {
		return nil, err
	}

	return agency.RestoreAgency(id, dto.Name, agency.Type(dto.AgencyType), parentID, forwarderID)
}
