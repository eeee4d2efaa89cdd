package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oleynichenko/ai-tools-api/internal/audit"
	"github.com/oleynichenko/ai-tools-api/internal/domain"
	"github.com/oleynichenko/ai-tools-api/internal/gateway"
	"github.com/oleynichenko/ai-tools-api/internal/port"
	"github.com/oleynichenko/ai-tools-api/internal/service"
	"github.com/oleynichenko/ai-tools-api/mocks"
)

func newTestSink(t *testing.T) (*audit.Sink, *mocks.MockAuditStore) {
	t.Helper()
	store := &mocks.MockAuditStore{}
	store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	sink := audit.NewSink(store, 8)
	t.Cleanup(sink.Close)
	return sink, store
}

func validImageInput() service.ParseReceiptInput {
	return service.ParseReceiptInput{
		FileBytes: []byte("fake-image-bytes"),
		MIMEType:  "image/jpeg",
		Filename:  "receipt.jpg",
	}
}

func TestParseReceipt_Success(t *testing.T) {
	gw := &mocks.MockModelGateway{}
	gw.On("Chat", mock.Anything, mock.MatchedBy(func(in port.ChatInput) bool {
		return len(in.ImageBytes) > 0 && in.ImageMIME == "image/jpeg"
	})).Return(&port.ChatOutput{
		Text: `{"date":"2024-03-02","total":9.98,"items":[{"description":"Milk","price":1.99}],"vendorName":"Edeka"}`,
		Raw:  []byte(`{"choices":[]}`),
	}, nil)

	sink, store := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	record, err := svc.ParseReceipt(context.Background(), validImageInput())
	require.NoError(t, err)
	assert.Equal(t, "Edeka", record.VendorName)
	assert.Equal(t, 9.98, record.Total)
	require.Len(t, record.Items, 1)

	sink.Close()
	store.AssertCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	gw.AssertExpectations(t)
}

func TestParseReceipt_RejectsNonImageBeforeProviderCall(t *testing.T) {
	gw := &mocks.MockModelGateway{}
	sink, _ := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	_, err := svc.ParseReceipt(context.Background(), service.ParseReceiptInput{
		FileBytes: []byte("%PDF-1.4"),
		MIMEType:  "application/pdf",
		Filename:  "receipt.pdf",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	gw.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestParseReceipt_RejectsEmptyFileBeforeProviderCall(t *testing.T) {
	gw := &mocks.MockModelGateway{}
	sink, _ := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	_, err := svc.ParseReceipt(context.Background(), service.ParseReceiptInput{
		FileBytes: nil,
		MIMEType:  "image/png",
		Filename:  "receipt.png",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	gw.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestParseReceipt_PlainStringReplyIsUnparsable(t *testing.T) {
	gw := &mocks.MockModelGateway{}
	gw.On("Chat", mock.Anything, mock.Anything).Return(&port.ChatOutput{
		Text: "The image does not appear to contain a receipt.",
		Raw:  []byte(`{}`),
	}, nil)

	sink, store := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	_, err := svc.ParseReceipt(context.Background(), validImageInput())
	assert.ErrorIs(t, err, domain.ErrUnparsableResponse)

	// The raw response is audited even when recovery fails.
	sink.Close()
	store.AssertCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseReceipt_InvalidSchemaRejected(t *testing.T) {
	gw := &mocks.MockModelGateway{}
	gw.On("Chat", mock.Anything, mock.Anything).Return(&port.ChatOutput{
		Text: `{"date":"2024-03-02","items":[],"vendorName":"Edeka"}`,
		Raw:  []byte(`{}`),
	}, nil)

	sink, _ := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	_, err := svc.ParseReceipt(context.Background(), validImageInput())
	assert.ErrorIs(t, err, domain.ErrInvalidExtraction)
	assert.Contains(t, err.Error(), "total")
}

func TestParseReceipt_ProviderErrorPropagates(t *testing.T) {
	provErr := &gateway.ProviderError{Op: "chat", StatusCode: 503, Err: errors.New("unavailable")}
	gw := &mocks.MockModelGateway{}
	gw.On("Chat", mock.Anything, mock.Anything).Return(nil, provErr)

	sink, _ := newTestSink(t)
	svc := service.NewReceiptService(gw, sink)

	_, err := svc.ParseReceipt(context.Background(), validImageInput())
	var got *gateway.ProviderError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 503, got.StatusCode)
}
