package service

import (
	"context"
	"log"

	"github.com/oleynichenko/ai-tools-api/internal/audit"
	"github.com/oleynichenko/ai-tools-api/internal/domain"
	"github.com/oleynichenko/ai-tools-api/internal/format"
	"github.com/oleynichenko/ai-tools-api/internal/port"
	"github.com/oleynichenko/ai-tools-api/internal/recovery"
	"github.com/oleynichenko/ai-tools-api/internal/validate"
)

// ParseReceiptInput is the DTO for receipt extraction requests.
type ParseReceiptInput struct {
	FileBytes []byte
	MIMEType  string
	Filename  string
}

// ReceiptService defines the receipt extraction contract.
type ReceiptService interface {
	ParseReceipt(ctx context.Context, input ParseReceiptInput) (*domain.ReceiptRecord, error)
}

type receiptService struct {
	gateway port.ModelGateway
	sink    *audit.Sink
}

// NewReceiptService creates a ReceiptService implementation.
func NewReceiptService(gw port.ModelGateway, sink *audit.Sink) ReceiptService {
	return &receiptService{gateway: gw, sink: sink}
}

// ParseReceipt runs the receipt pipeline: gate the upload, make one vision
// chat call, hand the raw response to the audit sink, then recover and
// validate the structured record. Any failure aborts the request; no partial
// result is ever returned.
func (s *receiptService) ParseReceipt(ctx context.Context, input ParseReceiptInput) (*domain.ReceiptRecord, error) {
	if err := format.ValidateImage(input.MIMEType, int64(len(input.FileBytes))); err != nil {
		return nil, err
	}

	log.Printf("receiptService.ParseReceipt: extracting from %s (%s, %d bytes)",
		input.Filename, input.MIMEType, len(input.FileBytes))

	out, err := s.gateway.Chat(ctx, port.ChatInput{
		Prompt:     receiptPrompt,
		ImageBytes: input.FileBytes,
		ImageMIME:  input.MIMEType,
	})
	if err != nil {
		return nil, err
	}

	s.sink.Record("receipt", out.Raw)

	obj, err := recovery.Recover(out.Text)
	if err != nil {
		return nil, err
	}

	record, err := validate.Receipt(obj)
	if err != nil {
		return nil, err
	}

	log.Printf("receiptService.ParseReceipt: parsed receipt from %q (%d items)",
		record.VendorName, len(record.Items))
	return record, nil
}
