package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/pkg/api"
)

const (
	// MessageInternal is the only message clients see for unexpected failures.
	MessageInternal = "Something went wrong"

	messageValidation    = "Validation Failed"
	messageRouteNotFound = "Route not found"
	messageOrderCreated  = "Order created successfully"
	messageStatusUpdated = "Order status updated successfully"
	messageDrinksFetched = "All drinks fetched successfully"
	messageDrinkFetched  = "Drink fetched successfully"
	messageOrdersFetched = "All orders fetched successfully"
	messageOrderFetched  = "Order fetched successfully"
	messageStatsFetched  = "Order stats fetched successfully"
	messageKeyReused     = "Idempotency-Key was already used for a different order"

	headerReplayed = "Idempotent-Replayed"
)

func respond[T any](c *gin.Context, status int, data T, message string) {
	c.JSON(status, api.Response[T]{Success: true, Data: data, Message: message})
}

// RespondError writes the failure envelope matching err.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		verr          *domainErrors.ValidationError
		transitionErr *domainErrors.TransitionError
	)

	switch {
	case errors.As(err, &verr):
		fields := make([]api.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, api.FieldError{Field: f.Field, Message: f.Message})
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: messageValidation, Errors: fields})
	case errors.Is(err, domainErrors.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, api.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrKeyReused):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: messageKeyReused})
	default:
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: MessageInternal})
	}
}

// RouteNotFound answers unknown routes.
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.ErrorResponse{Message: messageRouteNotFound})
}

// bindingError turns gin binding failures into a validation error naming the
// offending JSON fields.
func bindingError(err error) *domainErrors.ValidationError {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		var out *domainErrors.ValidationError
		for _, fe := range verrs {
			field, msg := jsonFieldPath(fe.Namespace()), fieldMessage(fe)
			if out == nil {
				out = domainErrors.NewValidationError(field, msg)
			} else {
				out.Add(field, msg)
			}
		}
		if out != nil {
			return out
		}
	case errors.As(err, &typeErr):
		return domainErrors.NewValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		return domainErrors.NewValidationError("body", "malformed JSON")
	}
	return domainErrors.NewValidationError("body", "invalid request body")
}

// jsonFieldPath converts "CreateOrderRequest.OrderDrinks[0].ID" into
// "orderDrinks.0.id".
func jsonFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		p = strings.ReplaceAll(p, "[", ".")
		p = strings.ReplaceAll(p, "]", "")
		switch {
		case p == "ID":
			p = "id"
		case p != "":
			p = strings.ToLower(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
