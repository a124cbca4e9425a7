package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"eventradar/internal/domain"
)

// maxBodyBytes bounds request bodies of callable endpoints.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). An empty body leaves dest
// at its zero value; anything after the first JSON value is rejected. On failure
// it writes an invalid-argument error and returns false; callers should return
// immediately in that case.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if !errors.Is(err, io.EOF) {
			WriteJSONError(w, domain.CodeInvalidArgument, "invalid request body: "+err.Error())
			return false
		}
	} else if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteJSONError(w, domain.CodeInvalidArgument, "invalid request body: must contain a single JSON value")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, domain.CodeInvalidArgument, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
