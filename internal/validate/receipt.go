// Package validate applies per-domain structural rules to objects recovered
// from model responses. A recovered object is promoted to a typed record or
// rejected with an error naming the offending field; it is never partially
// trusted or auto-corrected.
package validate

import (
	"fmt"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

// Receipt checks the recovered object against the receipt schema and builds a
// ReceiptRecord. total must be present even if zero; items may be empty but
// every element needs a non-empty description and a numeric price.
func Receipt(obj map[string]interface{}) (*domain.ReceiptRecord, error) {
	date, err := requireString(obj, "date")
	if err != nil {
		return nil, err
	}

	totalRaw, ok := obj["total"]
	if !ok {
		return nil, missingField("total")
	}
	total, ok := totalRaw.(float64)
	if !ok {
		return nil, wrongType("total", "number")
	}

	itemsRaw, ok := obj["items"]
	if !ok {
		return nil, missingField("items")
	}
	itemsList, ok := itemsRaw.([]interface{})
	if !ok {
		return nil, wrongType("items", "array")
	}

	vendor, err := requireString(obj, "vendorName")
	if err != nil {
		return nil, err
	}

	items := make([]domain.ReceiptItem, 0, len(itemsList))
	for i, raw := range itemsList {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return nil, wrongType(fmt.Sprintf("items[%d]", i), "object")
		}
		desc, ok := entry["description"].(string)
		if !ok || desc == "" {
			return nil, fmt.Errorf("%w: items[%d].description must be a non-empty string",
				domain.ErrInvalidExtraction, i)
		}
		price, ok := entry["price"].(float64)
		if !ok {
			return nil, wrongType(fmt.Sprintf("items[%d].price", i), "number")
		}
		items = append(items, domain.ReceiptItem{Description: desc, Price: price})
	}

	return &domain.ReceiptRecord{
		Date:       date,
		Total:      total,
		Items:      items,
		VendorName: vendor,
	}, nil
}

func requireString(obj map[string]interface{}, field string) (string, error) {
	raw, ok := obj[field]
	if !ok {
		return "", missingField(field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", wrongType(field, "string")
	}
	if s == "" {
		return "", fmt.Errorf("%w: field %q is empty", domain.ErrInvalidExtraction, field)
	}
	return s, nil
}

func missingField(field string) error {
	return fmt.Errorf("%w: missing required field %q", domain.ErrInvalidExtraction, field)
}

func wrongType(field, want string) error {
	return fmt.Errorf("%w: field %q must be a %s", domain.ErrInvalidExtraction, field, want)
}
