package http

import (
	"errors"
	"net/http"
	"strings"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/logging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

const (
	KindValidation        = "validation"
	KindUnauthenticated   = "unauthenticated"
	KindEmptyCart         = "empty_cart"
	KindInsufficientStock = "insufficient_stock"
	KindProductNotActive  = "product_not_active"
	KindInvalidTransition = "invalid_transition"
	KindConflict          = "conflict"
	KindForbidden         = "forbidden"
	KindNotFound          = "not_found"
	KindInternal          = "internal"
)

// NewErrorHandler returns an echo.HTTPErrorHandler that turns application
// errors into ErrorResponse bodies. Unclassified errors become 500 and are
// logged; their text is not sent to the client.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status == http.StatusInternalServerError {
			logging.WithTrace(c.Request().Context(), logger).Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("error response not written", zap.Error(writeErr))
		}
	}
}

func classify(err error) (int, ErrorResponse) {
	var (
		stockErr      *catalog.InsufficientStockError
		transitionErr *order.InvalidTransitionError
		notFoundErr   *errs.ObjectNotFoundError
		forbiddenErr  *errs.ForbiddenError
		versionErr    *errs.VersionIsInvalidError
		validationErr validator.ValidationErrors
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorResponse{
			Kind:    KindValidation,
			Message: "request body is invalid",
			Context: map[string]any{"fields": formatValidationErrors(validationErr)},
		}
	case errs.IsValidation(err):
		return http.StatusBadRequest, ErrorResponse{Kind: KindValidation, Message: err.Error()}
	case errors.Is(err, cart.ErrCartIsEmpty):
		return http.StatusBadRequest, ErrorResponse{Kind: KindEmptyCart, Message: err.Error()}
	case errors.As(err, &stockErr):
		return http.StatusConflict, ErrorResponse{
			Kind:    KindInsufficientStock,
			Message: err.Error(),
			Context: map[string]any{
				"product_id":   stockErr.ProductID.String(),
				"product_name": stockErr.ProductName,
				"requested":    stockErr.Requested,
				"available":    stockErr.Available,
			},
		}
	case errors.Is(err, catalog.ErrProductNotActive):
		return http.StatusUnprocessableEntity, ErrorResponse{Kind: KindProductNotActive, Message: err.Error()}
	case errors.As(err, &transitionErr):
		return http.StatusConflict, ErrorResponse{
			Kind:    KindInvalidTransition,
			Message: err.Error(),
			Context: map[string]any{
				"current":   transitionErr.Current.String(),
				"requested": transitionErr.Requested.String(),
			},
		}
	case errors.As(err, &versionErr):
		return http.StatusConflict, ErrorResponse{
			Kind:    KindConflict,
			Message: "the resource was changed concurrently, retry the request",
			Context: map[string]any{"resource": versionErr.ParamName},
		}
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden, ErrorResponse{
			Kind:    KindForbidden,
			Message: err.Error(),
			Context: map[string]any{"action": forbiddenErr.Action},
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorResponse{
			Kind:    KindNotFound,
			Message: err.Error(),
			Context: map[string]any{"resource": notFoundErr.ParamName},
		}
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{Kind: kindForStatus(httpErr.Code), Message: httpMessage(httpErr)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Kind: KindInternal, Message: "internal error"}
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	default:
		if status >= http.StatusInternalServerError {
			return KindInternal
		}
		return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
	}
}

func httpMessage(e *echo.HTTPError) string {
	if s, ok := e.Message.(string); ok {
		return s
	}
	return http.StatusText(e.Code)
}

func formatValidationErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = field + " is required"
		case "min":
			fields[field] = field + " must have at least " + fe.Param() + " entries"
		case "gte":
			fields[field] = field + " must be greater than or equal to " + fe.Param()
		case "uuid":
			fields[field] = field + " must be a UUID"
		case "oneof":
			fields[field] = field + " must be one of " + fe.Param()
		default:
			fields[field] = field + " is invalid"
		}
	}
	return fields
}
