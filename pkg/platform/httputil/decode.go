package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	dErrors "atelier/pkg/domain-errors"
	"atelier/pkg/requestcontext"
)

// MaxBodyBytes caps request bodies. Tracking payloads are a few hundred bytes.
const MaxBodyBytes = 16 << 10

// Normalizer is implemented by requests that tidy their fields before validation.
type Normalizer interface {
	Normalize()
}

// Validator is implemented by requests that can reject themselves.
type Validator interface {
	Validate() error
}

// Prepare normalizes, then validates req, skipping whichever step req does not support.
func Prepare(req any) error {
	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}
	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// Decode reads a JSON body into a T and prepares it. On failure the error
// response has already been written and the handler should just return.
//
//	req, ok := httputil.Decode[models.PageViewRequest](w, r, h.logger)
//	if !ok {
//	    return
//	}
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	ctx := r.Context()
	req := new(T)

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		WriteError(w, bodyError(err))
		return nil, false
	}

	if err := Prepare(req); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		// a domain code set by Validate survives the wrap
		WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, err.Error()))
		return nil, false
	}
	return req, true
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.New(dErrors.CodeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
}
