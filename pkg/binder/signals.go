package binder

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals decodes the datastar signal payload into v using its json tags.
// GET requests carry signals in the datastar query parameter, every other
// method in a JSON body. Requests without signals are ErrNotApplicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if _, err := structValue(v); err != nil {
			return err
		}
		if r.Method == http.MethodGet {
			if !r.URL.Query().Has("datastar") {
				return ErrNotApplicable
			}
		} else if !strings.Contains(r.Header.Get("Content-Type"), "json") {
			return ErrNotApplicable
		}

		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
