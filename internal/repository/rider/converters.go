package rider

import (
	"parcel-service/internal/entities"
)

func ToDomain(r *RiderDB) *entities.Rider {
	if r == nil {
		return nil
	}

	return &entities.Rider{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Region:           r.Region,
		District:         r.District,
		BikeRegistration: r.BikeRegistration,
		Status:           entities.RiderStatus(r.Status),
		WorkStatus:       entities.RiderWorkStatus(r.WorkStatus),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func FromDomainModify(riderModify *entities.RiderModify) *RiderModifyDB {
	if riderModify == nil {
		return nil
	}

	riderDB := &RiderModifyDB{
		ID:               riderModify.ID,
		Name:             riderModify.Name,
		Email:            riderModify.Email,
		Phone:            riderModify.Phone,
		Region:           riderModify.Region,
		District:         riderModify.District,
		BikeRegistration: riderModify.BikeRegistration,
	}
	if riderModify.Status != nil {
		status := riderModify.Status.String()
		riderDB.Status = &status
	}
	if riderModify.WorkStatus != nil {
		workStatus := riderModify.WorkStatus.String()
		riderDB.WorkStatus = &workStatus
	}

	return riderDB
}

func ToDomainList(ridersDB []RiderDB) []entities.Rider {
	if len(ridersDB) == 0 {
		return []entities.Rider{}
	}

	result := make([]entities.Rider, len(ridersDB))
	for i, riderDB := range ridersDB {
		result[i] = *ToDomain(&riderDB)
	}
	return result
}
