package validator

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/lumenpulse/apikit/pkg/sanitizer"
)

// transforms are the string transforms a YAML schema can name.
var transforms = map[string]func(string) string{
	"trim":            sanitizer.Trim,
	"lower":           sanitizer.ToLower,
	"trimLower":       sanitizer.TrimToLower,
	"nfc":             sanitizer.NormalizeUnicode,
	"stripControls":   sanitizer.RemoveControlChars,
	"escapeHtml":      sanitizer.EscapeHTML,
	"removeNullBytes": sanitizer.RemoveNullBytes,
	"sanitize":        sanitizer.SanitizeString,
}

type schemaDoc struct {
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Required    bool            `yaml:"required"`
	Transform   string          `yaml:"transform"`
	Constraints []constraintDoc `yaml:"constraints"`
	Fields      []fieldDoc      `yaml:"fields"`
	Items       *fieldDoc       `yaml:"items"`
}

// constraintDoc is either a bare rule name ("email") or a single-key
// mapping from rule name to its argument ("minLength: 3").
type constraintDoc struct {
	Name string
	Arg  *yaml.Node
}

func (c *constraintDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Name = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: constraint must have exactly one key", node.Line)
		}
		c.Name = node.Content[0].Value
		c.Arg = node.Content[1]
		return nil
	}
	return fmt.Errorf("line %d: constraint must be a name or a single-key mapping", node.Line)
}

// ParseSchema builds a Schema from a YAML document:
//
//	fields:
//	  - name: email
//	    type: string
//	    required: true
//	    transform: trimLower
//	    constraints:
//	      - email
//	      - maxLength: 254
//	  - name: tags
//	    type: array
//	    constraints: [{arrayMaxSize: 5}]
//	    items: {type: string, constraints: [notEmpty]}
func ParseSchema(data []byte) (Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Schema{}, errors.Join(ErrFailedToParseYAML, err)
	}

	fields, err := buildFields(doc.Fields, "")
	if err != nil {
		return Schema{}, err
	}
	return NewSchema(fields...)
}

// LoadSchema reads and parses a YAML schema from fsys.
func LoadSchema(fsys fs.FS, name string) (Schema, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema %s: %w", name, err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return Schema{}, fmt.Errorf("schema %s: %w", name, err)
	}
	return s, nil
}

func buildFields(docs []fieldDoc, prefix string) ([]Field, error) {
	fields := make([]Field, 0, len(docs))
	for _, d := range docs {
		f, err := buildField(d, joinPath(prefix, d.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func buildField(d fieldDoc, path string) (Field, error) {
	t, err := ParseType(d.Type)
	if err != nil {
		return Field{}, fmt.Errorf("%w: field %q", err, path)
	}

	f := Field{Name: d.Name, Type: t, Required: d.Required}

	if d.Transform != "" {
		fn, ok := transforms[d.Transform]
		if !ok {
			return Field{}, fmt.Errorf("%w: %q on field %q", ErrUnknownTransform, d.Transform, path)
		}
		f.Transform = fn
	}

	for _, cd := range d.Constraints {
		c, err := buildConstraint(cd)
		if err != nil {
			return Field{}, fmt.Errorf("field %q: %w", path, err)
		}
		f.Constraints = append(f.Constraints, c)
	}

	if t == TypeObject {
		nested, err := buildFields(d.Fields, path)
		if err != nil {
			return Field{}, err
		}
		f.Schema = &Schema{Fields: nested}
	}

	if d.Items != nil {
		items, err := buildField(*d.Items, path+".*")
		if err != nil {
			return Field{}, err
		}
		f.Items = &items
	}

	return f, nil
}

func buildConstraint(cd constraintDoc) (Constraint, error) {
	switch cd.Name {
	case "notEmpty":
		return NotEmpty(), nil
	case "email":
		return Email(), nil
	case "url":
		return URL(), nil
	case "dateString":
		return DateString(), nil
	case "uuid":
		return UUID(), nil
	case "positive":
		return Positive(), nil
	}

	if cd.Arg == nil {
		return Constraint{}, fmt.Errorf("%w: %q (missing argument?)", ErrUnknownConstraint, cd.Name)
	}

	switch cd.Name {
	case "minLength", "maxLength", "arrayMinSize", "arrayMaxSize":
		var n int
		if err := cd.Arg.Decode(&n); err != nil {
			return Constraint{}, fmt.Errorf("%s: %w", cd.Name, err)
		}
		return map[string]func(int) Constraint{
			"minLength":    MinLength,
			"maxLength":    MaxLength,
			"arrayMinSize": ArrayMinSize,
			"arrayMaxSize": ArrayMaxSize,
		}[cd.Name](n), nil

	case "length":
		var bounds []int
		if err := cd.Arg.Decode(&bounds); err != nil || len(bounds) != 2 {
			return Constraint{}, fmt.Errorf("length: want [min, max]")
		}
		return Length(bounds[0], bounds[1]), nil

	case "min", "max":
		var n float64
		if err := cd.Arg.Decode(&n); err != nil {
			return Constraint{}, fmt.Errorf("%s: %w", cd.Name, err)
		}
		if cd.Name == "min" {
			return Min(n), nil
		}
		return Max(n), nil

	case "matches":
		var pattern string
		if err := cd.Arg.Decode(&pattern); err != nil {
			return Constraint{}, fmt.Errorf("matches: %w", err)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Constraint{}, fmt.Errorf("matches: %w", err)
		}
		return MatchesRegexp(re), nil

	case "oneOf":
		var values []string
		if err := cd.Arg.Decode(&values); err != nil {
			return Constraint{}, fmt.Errorf("oneOf: %w", err)
		}
		return OneOf(values...), nil

	case "expr":
		var e struct {
			Name       string `yaml:"name"`
			Expression string `yaml:"expression"`
			Message    string `yaml:"message"`
		}
		if err := cd.Arg.Decode(&e); err != nil {
			return Constraint{}, fmt.Errorf("expr: %w", err)
		}
		if e.Name == "" {
			e.Name = "expr"
		}
		return Expr(e.Name, e.Expression, e.Message)
	}

	return Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraint, cd.Name)
}
