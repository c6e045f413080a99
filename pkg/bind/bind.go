// Package bind decodes and validates an HTTP request into a struct.
//
// JSON bodies go through encoding/json; urlencoded and multipart posts are
// decoded with mapstructure using the same `json` tags, so one input struct
// serves both the storefront forms and the JSON API.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// Request picks JSON or Form from the Content-Type header.
func Request(r *http.Request, dest interface{}) (map[string]string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		return JSON(r, dest)
	}
	return Form(r, dest)
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err = json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return check(dest), nil
}

// Form decodes the query string and form body into dest and runs validation.
// Single-valued fields decode as scalars; repeated fields as slices.
func Form(r *http.Request, dest interface{}) (map[string]string, error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	input := make(map[string]interface{}, len(r.Form))
	for key, values := range r.Form {
		switch len(values) {
		case 0:
		case 1:
			input[key] = values[0]
		default:
			input[key] = values
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dest,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	return check(dest), nil
}

// Normalizer is implemented by inputs that canonicalise values (trim,
// lower-case, map aliases) after decoding and before validation.
type Normalizer interface {
	Normalize()
}

func check(dest interface{}) map[string]string {
	if n, ok := dest.(Normalizer); ok {
		n.Normalize()
	}
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs
	}
	return nil
}
