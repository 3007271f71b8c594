package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

const birthDateLayout = "2006-01-02"

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		Identification: patient.Identification,
		Phone:          patient.Phone,
		Email:          patient.Email,
		Address:        patient.Address,
		Sex:            patient.Sex,
		Active:         patient.Active,
	}
	if patient.BirthDate != nil {
		resp.BirthDate = patient.BirthDate.Format(birthDateLayout)
	}
	return resp
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
