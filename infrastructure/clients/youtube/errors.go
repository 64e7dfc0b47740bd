package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"video-stats-updater/domain/model"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// classify maps API and token errors onto the domain error kinds.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s: %v", model.ErrAuth, op, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", model.ErrNotFound, op, err)
		}
		return fmt.Errorf("%w: %s: %v", model.ErrRemote, op, err)
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %s: token refresh failed: %v", model.ErrAuth, op, err)
	}
	return fmt.Errorf("%w: %s: %v", model.ErrRemote, op, err)
}
