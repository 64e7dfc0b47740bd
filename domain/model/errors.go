package model

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrAssetLoad  = errors.New("asset load error")
	ErrRender     = errors.New("render error")
	ErrNotFound   = errors.New("video not found")
	ErrAuth       = errors.New("authorization error")
	ErrRemote     = errors.New("remote error")
)

// ErrorKind maps an error onto the stable kind string reported in outcomes.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAssetLoad):
		return "asset_load"
	case errors.Is(err, ErrRender):
		return "render"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrRemote):
		return "remote"
	default:
		return "internal"
	}
}
