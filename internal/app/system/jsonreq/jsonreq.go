// internal/app/system/jsonreq/jsonreq.go
package jsonreq

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/edunaija/edunaija/internal/app/system/limits"
)

var ErrBadBody = errors.New("request body is not valid json")

// Decode reads a size-limited JSON body into dst. Trailing content
// after the first JSON value is rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return ErrBadBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrBadBody
	}
	return nil
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
