// Package validator checks a decoded request payload against a declarative
// schema and returns a typed, whitelisted copy of it.
//
// A Schema is an ordered list of Field descriptors. Each field declares its
// expected Type, whether it is required, and a list of Constraint values that
// are evaluated exhaustively: every failing constraint is reported, not just
// the first one. Object fields carry a nested Schema, array fields an Items
// descriptor applied to every element.
//
// # Coercion
//
// Scalars are converted towards the declared type before constraints run.
// Numeric strings become numbers, "true"/"false"/"1"/"0" become booleans and
// numbers or booleans become strings. A value that cannot be converted is
// reported with a single type violation and its constraints are skipped.
//
// # Whitelisting
//
// Properties that the schema does not declare are rejected at every nesting
// level with a whitelistValidation violation. The returned value contains only
// declared fields, in declaration order.
//
// # Errors
//
// Failures are returned as *ValidationError, which holds a tree of ErrorNode
// values mirroring the payload shape. Flatten turns the tree into a list of
// human readable messages of the form "path.to.field: message".
//
// # Usage
//
//	schema := validator.MustSchema(
//	    validator.Field{Name: "email", Type: validator.TypeString, Required: true,
//	        Constraints: []validator.Constraint{validator.Email()}},
//	    validator.Field{Name: "age", Type: validator.TypeInteger,
//	        Constraints: []validator.Constraint{validator.Min(18)}},
//	)
//
//	clean, err := validator.Validate(raw, schema)
//	if err != nil {
//	    fmt.Println(validator.Flatten(validator.ExtractValidationError(err).Nodes))
//	}
//
// Schemas can also be loaded from YAML documents with ParseSchema and
// LoadSchema, and custom rules can be written as CEL expressions with Expr.
package validator
