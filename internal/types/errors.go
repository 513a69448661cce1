package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrEmptyQuery = errors.New("query must not be empty")
var ErrInvalidImage = errors.New("image must be base64 or a base64 data URL")
var ErrNoAPIKey = errors.New("api key not configured")
var ErrUpstream = errors.New("upstream service error")
