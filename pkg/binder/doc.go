// Package binder turns HTTP request data into untrusted payload values.
//
// Binders never populate Go structs directly. They produce a payload.Value
// that is validated and sanitized by the pipeline before any business code
// sees it; typed request structs are decoded from the sanitized value
// afterwards.
//
// # Available Binders
//
//   - JSON(opts...): size-limited JSON body, keys kept in wire order
//   - Query(): URL query parameters
//   - Form(): urlencoded and multipart form values
//   - Path(extractor, names...): router path parameters
//   - Chain(binders...): merges the objects produced by several binders
//
// # Usage
//
//	bind := binder.Chain(
//	    binder.Path(chi.URLParam, "id"),
//	    binder.JSON(binder.WithMaxBodySize(64<<10)),
//	)
//	raw, err := bind(r)
//
// # Error Handling
//
//   - ErrMissingContentType: a body was sent without a Content-Type header
//   - ErrUnsupportedMediaType: the Content-Type is not accepted by the binder
//   - ErrRequestTooLarge: the body exceeds the configured limit
//   - ErrFailedToParseJSON: the body is not a single JSON document
//   - ErrFailedToParseForm: the form could not be parsed
//   - ErrInvalidPath: the path binder is misconfigured
//   - ErrBinderNotApplicable: the binder does not apply to this request; Chain skips it
package binder
