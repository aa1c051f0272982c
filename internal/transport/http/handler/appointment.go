package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

type AppointmentHandler struct {
	appointmentService *app.AppointmentService
}

func NewAppointmentHandler(appointmentService *app.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

type ScheduleAppointmentRequest struct {
	Title           string    `json:"title" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
	DoctorEmail     string    `json:"doctor_email" binding:"required,email"`
}

type UpdateAppointmentRequest struct {
	Status      string  `json:"status"`
	MeetingLink *string `json:"meeting_link"`
}

// Schedule books a patient appointment with a doctor.
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointmentService.Schedule(user, app.ScheduleAppointmentInput{
		Title:           req.Title,
		AppointmentTime: req.AppointmentTime,
		DoctorEmail:     req.DoctorEmail,
	})
	if err != nil {
		respondServiceError(c, err, "failed to schedule appointment")
		return
	}
	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "appointment scheduled",
		Data:    gin.H{"appointment": appointment},
	})
}

// Update changes status or meeting link of the doctor's own appointment.
func (h *AppointmentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointmentService.Update(user, id, app.UpdateAppointmentInput{
		Status:      req.Status,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update appointment")
		return
	}
	response.OK(c, gin.H{"appointment": appointment})
}

// List returns the caller's appointments, optionally filtered by ?status=.
func (h *AppointmentHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.List(user, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "failed to list appointments")
		return
	}
	response.OK(c, gin.H{"appointments": appointments})
}
