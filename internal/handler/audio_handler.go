package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// AudioHandler handles audio analysis endpoints.
type AudioHandler struct {
	audioService service.AudioService
}

// NewAudioHandler creates a new AudioHandler.
func NewAudioHandler(audioService service.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// AnalyseAudio handles POST /audio/analyse-audio
func (h *AudioHandler) AnalyseAudio(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	analysis, err := h.audioService.AnalyseAudio(c.Request.Context(), service.AnalyseAudioInput{
		FileBytes: data,
		MIMEType:  header.Header.Get("Content-Type"),
		Filename:  header.Filename,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}
