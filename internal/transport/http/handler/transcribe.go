package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

const maxAudioSize = 25 << 20 // 25 MB

type TranscribeHandler struct {
	transcribeService *app.TranscribeService
}

func NewTranscribeHandler(transcribeService *app.TranscribeService) *TranscribeHandler {
	return &TranscribeHandler{transcribeService: transcribeService}
}

// Transcribe accepts a multipart form with "audio_file" and returns the
// recognized text; recognition failures come back as empty text.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	file, err := c.FormFile("audio_file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing audio file")
		return
	}
	if file.Size > maxAudioSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "audio file too large (max 25MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read audio file")
		return
	}
	defer f.Close()

	text := h.transcribeService.Transcribe(c.Request.Context(), file.Filename, f)
	response.OK(c, gin.H{"text": text})
}
