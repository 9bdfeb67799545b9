// Package introspect builds quill interface descriptors out of tagged
// Go struct types. A struct stands in for the client interface: its
// func-typed fields are the operations, embedded struct fields are
// parent interfaces, and `contract:"..."` tags carry the directives.
package introspect

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/toyz/quill/pkg/quill"
)

// Tag grammar: a sequence of directive calls, ex.
//
//	headers("Accept: application/json") requestLine("GET /repos/{owner}", decodeSlash=false) param(0, "owner", expander=uuid)
type tagDirectives struct {
	Calls []*tagCall `parser:"@@*"`
}

type tagCall struct {
	Name string    `parser:"@Ident"`
	Args []*tagArg `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type tagArg struct {
	Key   string    `parser:"( @Ident '=' )?"`
	Value *tagValue `parser:"@@"`
}

type tagValue struct {
	Str   *string `parser:"@String"`
	Int   *int    `parser:"| @Int"`
	Ident *string `parser:"| @Ident"`
}

var tagParser = participle.MustBuild[tagDirectives](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[(),=]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

func parseTag(tag string) ([]*tagCall, error) {
	parsed, err := tagParser.ParseString("", tag)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract tag %q: %w", tag, err)
	}
	return parsed.Calls, nil
}

// text returns the value as a plain string, unquoting string literals.
func (v *tagValue) text() string {
	switch {
	case v.Str != nil:
		return unquote(*v.Str)
	case v.Int != nil:
		return fmt.Sprintf("%d", *v.Int)
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `\"`, `"`)
}

// directive converts a parsed call into a quill directive. A non-nil
// argIndex means the directive attaches to that argument position
// instead of the surrounding scope.
func (c *tagCall) directive() (d quill.Directive, argIndex *int, err error) {
	positional := make([]*tagValue, 0, len(c.Args))
	options := make(map[string]*tagValue)
	for _, a := range c.Args {
		if a.Key != "" {
			options[a.Key] = a.Value
		} else {
			positional = append(positional, a.Value)
		}
	}

	reject := func(allowed ...string) error {
		for key := range options {
			known := false
			for _, name := range allowed {
				if key == name {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("directive %s does not take option %q", c.Name, key)
			}
		}
		return nil
	}

	switch c.Name {
	case "headers":
		if err := reject(); err != nil {
			return d, nil, err
		}
		values := make([]string, len(positional))
		for i, v := range positional {
			values[i] = v.text()
		}
		return quill.Headers(values...), nil, nil

	case "requestLine":
		if err := reject("decodeSlash", "collectionFormat"); err != nil {
			return d, nil, err
		}
		if len(positional) != 1 {
			return d, nil, fmt.Errorf("requestLine takes exactly one value")
		}
		decodeSlash := true
		if v, ok := options["decodeSlash"]; ok {
			decodeSlash, err = parseBool(v)
			if err != nil {
				return d, nil, fmt.Errorf("requestLine decodeSlash: %w", err)
			}
		}
		format := quill.CollectionExploded
		if v, ok := options["collectionFormat"]; ok {
			format, err = quill.ParseCollectionFormat(v.text())
			if err != nil {
				return d, nil, fmt.Errorf("requestLine collectionFormat: %w", err)
			}
		}
		return quill.RequestLineOpts(positional[0].text(), decodeSlash, format), nil, nil

	case "body":
		if err := reject(); err != nil {
			return d, nil, err
		}
		if len(positional) != 1 {
			return d, nil, fmt.Errorf("body takes exactly one value")
		}
		return quill.Body(positional[0].text()), nil, nil

	case "param":
		if err := reject("expander"); err != nil {
			return d, nil, err
		}
		index, rest, err := takeIndex(c.Name, positional)
		if err != nil {
			return d, nil, err
		}
		name := ""
		if len(rest) == 1 {
			name = rest[0].text()
		} else if len(rest) > 1 {
			return d, nil, fmt.Errorf("param takes at most one name")
		}
		expander := ""
		if v, ok := options["expander"]; ok {
			expander = v.text()
		}
		if expander != "" {
			return quill.ParamWith(name, expander), &index, nil
		}
		return quill.Param(name), &index, nil

	case "queryMap":
		if err := reject(); err != nil {
			return d, nil, err
		}
		index, rest, err := takeIndex(c.Name, positional)
		if err != nil {
			return d, nil, err
		}
		if len(rest) > 0 {
			return d, nil, fmt.Errorf("queryMap takes only an argument index")
		}
		return quill.QueryMap(), &index, nil

	case "headerMap":
		if err := reject(); err != nil {
			return d, nil, err
		}
		index, rest, err := takeIndex(c.Name, positional)
		if err != nil {
			return d, nil, err
		}
		if len(rest) > 0 {
			return d, nil, fmt.Errorf("headerMap takes only an argument index")
		}
		return quill.HeaderMap(), &index, nil

	default:
		return d, nil, fmt.Errorf("unknown directive %q", c.Name)
	}
}

func takeIndex(name string, positional []*tagValue) (int, []*tagValue, error) {
	if len(positional) == 0 || positional[0].Int == nil {
		return 0, nil, fmt.Errorf("%s needs an argument index as its first value", name)
	}
	return *positional[0].Int, positional[1:], nil
}

func parseBool(v *tagValue) (bool, error) {
	switch v.text() {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false, got %q", v.text())
	}
}
