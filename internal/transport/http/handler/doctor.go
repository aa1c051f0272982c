package handler

import (
	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

type DoctorHandler struct {
	doctorService *app.DoctorService
}

func NewDoctorHandler(doctorService *app.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// ListPatients returns emails of patients connected to the calling doctor.
func (h *DoctorHandler) ListPatients(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	patients, err := h.doctorService.ListPatients(user)
	if err != nil {
		respondServiceError(c, err, "failed to list patients")
		return
	}
	response.OK(c, gin.H{"patients": patients})
}

// PatientReports returns a connected patient's reports for the calling doctor.
func (h *DoctorHandler) PatientReports(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reports, err := h.doctorService.PatientReports(user, c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "failed to list patient reports")
		return
	}
	response.OK(c, gin.H{"reports": reports})
}

// PatientAppointments returns appointments between the doctor and a patient.
func (h *DoctorHandler) PatientAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	appointments, err := h.doctorService.PatientAppointments(user, c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "failed to list appointments")
		return
	}
	response.OK(c, gin.H{"appointments": appointments})
}
