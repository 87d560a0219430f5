package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/engine"
	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

var (
	// ErrBudgetTooLarge is returned when a request asks for more resistors
	// than the server allows.
	ErrBudgetTooLarge = errors.New("server: max_resistors exceeds server limit")
	// ErrExpressionTooLong is returned for SCF text over the server limit.
	ErrExpressionTooLong = errors.New("server: expression exceeds server limit")
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorStatus maps err to an HTTP status and a stable error code. More
// specific sentinels are checked before the ones that wrap them.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, ErrBudgetTooLarge), errors.Is(err, search.ErrTooManyCandidates):
		return http.StatusBadRequest, "BUDGET_TOO_LARGE"
	case errors.Is(err, ErrExpressionTooLong):
		return http.StatusBadRequest, "EXPRESSION_TOO_LONG"
	case errors.Is(err, expr.ErrIndexOutOfRange):
		return http.StatusBadRequest, "INDEX_OUT_OF_RANGE"
	case errors.Is(err, expr.ErrMalformedExpression):
		return http.StatusBadRequest, "MALFORMED_EXPRESSION"
	case errors.Is(err, expr.ErrDivisionByZero):
		return http.StatusBadRequest, "DIVISION_BY_ZERO"
	case errors.Is(err, search.ErrInvalidBudget):
		return http.StatusBadRequest, "INVALID_BUDGET"
	case errors.Is(err, search.ErrInvalidTarget):
		return http.StatusBadRequest, "INVALID_TARGET"
	case errors.Is(err, search.ErrUnknownStrategy):
		return http.StatusBadRequest, "UNKNOWN_STRATEGY"
	case errors.Is(err, catalog.ErrUnknownCatalog):
		return http.StatusBadRequest, "UNKNOWN_CATALOG"
	case errors.Is(err, catalog.ErrInvalidCatalog), errors.Is(err, catalog.ErrInvalidValue):
		return http.StatusBadRequest, "INVALID_CATALOG"
	case errors.Is(err, engine.ErrInvalidConfig):
		return http.StatusBadRequest, "INVALID_CONFIG"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
