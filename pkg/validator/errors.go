package validator

import "errors"

var (
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrUnknownType       = errors.New("unknown field type")
	ErrUnknownConstraint = errors.New("unknown constraint")
	ErrUnknownTransform  = errors.New("unknown transform")
	ErrInvalidExpression = errors.New("invalid constraint expression")
	ErrFailedToParseYAML = errors.New("failed to parse schema YAML")
)
