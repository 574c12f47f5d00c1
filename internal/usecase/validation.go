package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// ParseStatus validates a raw status value. Matching is exact.
func ParseStatus(raw string) (model.OrderStatus, error) {
	status := model.OrderStatus(raw)
	if !status.Valid() {
		return "", domainErrors.NewValidationError("status", statusMessage()).WithCause(domainErrors.ErrInvalidStatus)
	}
	return status, nil
}

// ParseOrderFilter builds a listing filter from raw query values. Timestamps
// are RFC 3339.
func ParseOrderFilter(status, customer, from, to string) (model.OrderFilter, error) {
	var (
		filter = model.OrderFilter{Customer: customer}
		verr   *domainErrors.ValidationError
	)
	fail := func(field, msg string) {
		if verr == nil {
			verr = domainErrors.NewValidationError(field, msg)
			return
		}
		verr.Add(field, msg)
	}

	if status != "" {
		s, err := ParseStatus(status)
		if err != nil {
			fail("status", statusMessage())
			verr.WithCause(domainErrors.ErrInvalidStatus)
		}
		filter.Status = s
	}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			fail("from", "must be an RFC 3339 timestamp")
		}
		filter.From = t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			fail("to", "must be an RFC 3339 timestamp")
		}
		filter.To = t
	}
	if verr == nil && !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		fail("to", "must not be before from")
	}

	if verr != nil {
		return model.OrderFilter{}, verr
	}
	return filter, nil
}

func statusMessage() string {
	names := make([]string, 0, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		names = append(names, string(s))
	}
	return "must be one of " + strings.Join(names, ", ")
}
