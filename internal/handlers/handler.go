// internal/handlers/handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/handlers/middleware"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

// DefaultPageLimit is used when a list request carries no limit.
const DefaultPageLimit = 5

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a JSON body into dst and runs struct validation on it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body should not be empty")
		}
		return domain.NewValidationError("body", fmt.Sprintf("malformed JSON: %v", err))
	}

	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	v := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		v.Add(fieldPath(fe), fieldMessage(fe))
	}
	return v
}

// fieldPath turns "createSalesRequest.items[0].quantity" into "items.0.quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " should not be empty"
	case "gt":
		if fe.Param() == "0" {
			return name + " must be a positive number"
		}
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be less than %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s elements", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed the %s check", name, fe.Tag())
	}
}

// writeError maps core errors onto the failure envelope.
func writeError(ctx context.Context, w http.ResponseWriter, l *slog.Logger, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		shortage   *domain.InsufficientStockError
		duplicate  *domain.DuplicateError
		aborted    *domain.TransactionAbortedError
	)

	switch {
	case errors.As(err, &validation):
		response.Error(w, http.StatusBadRequest, "Bad Request", validation.Fields...)
	case errors.As(err, &notFound):
		response.Error(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &shortage):
		response.Error(w, http.StatusBadRequest, shortage.Error())
	case errors.As(err, &duplicate):
		response.Error(w, http.StatusBadRequest, duplicate.Error())
	case errors.As(err, &aborted):
		l.WarnContext(ctx, "transaction aborted", slog.String("error", err.Error()))
		response.Error(w, http.StatusConflict, "The request conflicted with a concurrent change, please retry")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		response.Error(w, http.StatusServiceUnavailable, "Request timeout")
	default:
		l.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id must be a positive number")
	}
	return id, nil
}

// listParams reads page and limit. A missing limit falls back to
// DefaultPageLimit; limit=0 asks for every row.
func listParams(r *http.Request) (ports.ListParams, error) {
	params := ports.ListParams{Page: 1, Limit: DefaultPageLimit}
	v := &domain.ValidationError{}

	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			v.Add("page", "page must not be less than 1")
		} else {
			params.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			v.Add("limit", "limit must not be less than 0")
		} else {
			params.Limit = limit
		}
	}

	return params, v.OrNil()
}

// actorFrom returns the authenticated caller. Routes are always mounted
// behind Authenticate, so a missing actor is a wiring bug.
func actorFrom(r *http.Request) (domain.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return domain.Actor{}, errors.New("no authenticated actor on request")
	}
	return actor, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "date must be a Date instance")
	}
	return t, nil
}
