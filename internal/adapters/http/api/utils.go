package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies; a full role set is a few dozen KB.
const maxBodyBytes = 1 << 20

// decodeJSON reads exactly one JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body: %w", ErrBadRequest)
		}
		return fmt.Errorf("decode body: %w: %w", ErrBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("trailing data after body: %w", ErrBadRequest)
	}
	return nil
}

// pathParam returns the trimmed path wildcard or an ErrBadRequest.
func pathParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.PathValue(name))
	if v == "" {
		return "", fmt.Errorf("missing %s: %w", name, ErrBadRequest)
	}
	return v, nil
}
