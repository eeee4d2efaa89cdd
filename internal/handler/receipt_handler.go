package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// ReceiptHandler handles receipt extraction endpoints.
type ReceiptHandler struct {
	receiptService service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ParseReceipt handles POST /receipt/parse-receipt
func (h *ReceiptHandler) ParseReceipt(c *gin.Context) {
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

	record, err := h.receiptService.ParseReceipt(c.Request.Context(), service.ParseReceiptInput{
		FileBytes: data,
		MIMEType:  header.Header.Get("Content-Type"),
		Filename:  header.Filename,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}
