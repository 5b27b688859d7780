package parcel

import (
	"parcel-service/internal/entities"
)

func ToDomain(p *ParcelDB) *entities.Parcel {
	if p == nil {
		return nil
	}

	parcel := &entities.Parcel{
		ID:               p.ID,
		CreatedBy:        p.CreatedBy,
		Title:            p.Title,
		Type:             entities.ParcelType(p.Type),
		WeightKg:         p.WeightKg,
		SenderName:       p.SenderName,
		SenderDistrict:   p.SenderDistrict,
		ReceiverName:     p.ReceiverName,
		ReceiverDistrict: p.ReceiverDistrict,
		ReceiverAddress:  p.ReceiverAddress,
		DeliveryCost:     p.DeliveryCost,
		PaymentStatus:    entities.PaymentStatus(p.PaymentStatus),
		DeliveryStatus:   entities.DeliveryStatus(p.DeliveryStatus),
		CashoutStatus:    entities.CashoutStatus(p.CashoutStatus),
		AssignedAt:       p.AssignedAt,
		PickedAt:         p.PickedAt,
		DeliveredAt:      p.DeliveredAt,
		CashedOutAt:      p.CashedOutAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	if p.AssignedRiderID != nil {
		rider := &entities.AssignedRider{ID: *p.AssignedRiderID}
		if p.AssignedRiderName != nil {
			rider.Name = *p.AssignedRiderName
		}
		if p.AssignedRiderEmail != nil {
			rider.Email = *p.AssignedRiderEmail
		}
		parcel.AssignedRider = rider
	}

	return parcel
}

func FromDomainModify(parcelModify *entities.ParcelModify) *ParcelModifyDB {
	if parcelModify == nil {
		return nil
	}

	parcelDB := &ParcelModifyDB{
		ID:               parcelModify.ID,
		CreatedBy:        parcelModify.CreatedBy,
		Title:            parcelModify.Title,
		WeightKg:         parcelModify.WeightKg,
		SenderName:       parcelModify.SenderName,
		SenderDistrict:   parcelModify.SenderDistrict,
		ReceiverName:     parcelModify.ReceiverName,
		ReceiverDistrict: parcelModify.ReceiverDistrict,
		ReceiverAddress:  parcelModify.ReceiverAddress,
		DeliveryCost:     parcelModify.DeliveryCost,
		AssignedAt:       parcelModify.AssignedAt,
		PickedAt:         parcelModify.PickedAt,
		DeliveredAt:      parcelModify.DeliveredAt,
		CashedOutAt:      parcelModify.CashedOutAt,
	}
	if parcelModify.Type != nil {
		parcelType := parcelModify.Type.String()
		parcelDB.Type = &parcelType
	}
	if parcelModify.PaymentStatus != nil {
		status := parcelModify.PaymentStatus.String()
		parcelDB.PaymentStatus = &status
	}
	if parcelModify.DeliveryStatus != nil {
		status := parcelModify.DeliveryStatus.String()
		parcelDB.DeliveryStatus = &status
	}
	if parcelModify.CashoutStatus != nil {
		status := parcelModify.CashoutStatus.String()
		parcelDB.CashoutStatus = &status
	}
	if rider := parcelModify.AssignedRider; rider != nil {
		parcelDB.AssignedRiderID = &rider.ID
		parcelDB.AssignedRiderName = &rider.Name
		parcelDB.AssignedRiderEmail = &rider.Email
	}

	return parcelDB
}

func ToDomainList(parcelsDB []ParcelDB) []entities.Parcel {
	if len(parcelsDB) == 0 {
		return []entities.Parcel{}
	}

	result := make([]entities.Parcel, len(parcelsDB))
	for i, parcelDB := range parcelsDB {
		result[i] = *ToDomain(&parcelDB)
	}
	return result
}

func EventToDomain(e *ParcelEventDB) entities.ParcelEvent {
	return entities.ParcelEvent{
		ID:         e.ID,
		ParcelID:   e.ParcelID,
		Field:      entities.EventField(e.Field),
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Actor:      e.Actor,
		CreatedAt:  e.CreatedAt,
	}
}
