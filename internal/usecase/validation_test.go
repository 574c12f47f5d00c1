package usecase

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "COMPLETED", "CANCELLED"} {
		status, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("expected %s to be valid: %v", raw, err)
		}
		if string(status) != raw {
			t.Fatalf("expected %s, got %s", raw, status)
		}
	}

	for _, raw := range []string{"", "completed", " PENDING", "SHIPPED"} {
		_, err := ParseStatus(raw)
		if !errors.Is(err, domainErrors.ErrValidation) || !errors.Is(err, domainErrors.ErrInvalidStatus) {
			t.Fatalf("expected invalid status validation error for %q, got %v", raw, err)
		}
	}
}

func TestParseOrderFilter(t *testing.T) {
	filter, err := ParseOrderFilter("COMPLETED", "ann", "2025-01-01T00:00:00Z", "2025-01-02T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Status != model.OrderStatusCompleted || filter.Customer != "ann" {
		t.Fatalf("unexpected filter %+v", filter)
	}
	if !filter.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", filter.From)
	}

	empty, err := ParseOrderFilter("", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty != (model.OrderFilter{}) {
		t.Fatalf("expected zero filter, got %+v", empty)
	}
}

func TestParseOrderFilterCollectsFieldErrors(t *testing.T) {
	_, err := ParseOrderFilter("DONE", "", "yesterday", "tomorrow")
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected three field errors, got %+v", verr.Fields)
	}

	_, err = ParseOrderFilter("", "", "2025-01-02T00:00:00Z", "2025-01-01T00:00:00Z")
	if !errors.As(err, &verr) || verr.Fields[0].Field != "to" {
		t.Fatalf("expected inverted range to be rejected, got %v", err)
	}
}

func TestParseOrderFilterKeepsInvalidStatusCause(t *testing.T) {
	_, err := ParseOrderFilter("bad", "", "", "")
	if !errors.Is(err, domainErrors.ErrValidation) || !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status validation error, got %v", err)
	}

	_, err = ParseOrderFilter("", "", "yesterday", "")
	if errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("timestamp errors must not report an invalid status, got %v", err)
	}
}
