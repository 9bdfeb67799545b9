package quill

import (
	"encoding/json"
	"fmt"
)

// DirectiveKind identifies one entry of the directive vocabulary.
type DirectiveKind int

const (
	DirectiveHeaders DirectiveKind = iota
	DirectiveRequestLine
	DirectiveBody
	DirectiveParam
	DirectiveQueryMap
	DirectiveHeaderMap
)

// String returns the string representation of the directive kind
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveHeaders:
		return "headers"
	case DirectiveRequestLine:
		return "requestLine"
	case DirectiveBody:
		return "body"
	case DirectiveParam:
		return "param"
	case DirectiveQueryMap:
		return "queryMap"
	case DirectiveHeaderMap:
		return "headerMap"
	default:
		return "unknown"
	}
}

// ParseDirectiveKind converts a string to a DirectiveKind
func ParseDirectiveKind(s string) (DirectiveKind, error) {
	switch s {
	case "headers":
		return DirectiveHeaders, nil
	case "requestLine":
		return DirectiveRequestLine, nil
	case "body":
		return DirectiveBody, nil
	case "param":
		return DirectiveParam, nil
	case "queryMap":
		return DirectiveQueryMap, nil
	case "headerMap":
		return DirectiveHeaderMap, nil
	default:
		return 0, fmt.Errorf("unknown directive kind: %s", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k DirectiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *DirectiveKind) UnmarshalText(text []byte) error {
	parsed, err := ParseDirectiveKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// CollectionFormat selects the serialization strategy for multi-valued
// query and form values.
type CollectionFormat int

const (
	CollectionExploded CollectionFormat = iota // repeat the key for every value
	CollectionCSV
	CollectionSSV
	CollectionTSV
	CollectionPipes
)

// String returns the string representation of the collection format
func (f CollectionFormat) String() string {
	switch f {
	case CollectionExploded:
		return "exploded"
	case CollectionCSV:
		return "csv"
	case CollectionSSV:
		return "ssv"
	case CollectionTSV:
		return "tsv"
	case CollectionPipes:
		return "pipes"
	default:
		return "unknown"
	}
}

// ParseCollectionFormat converts a string to a CollectionFormat
func ParseCollectionFormat(s string) (CollectionFormat, error) {
	switch s {
	case "exploded":
		return CollectionExploded, nil
	case "csv":
		return CollectionCSV, nil
	case "ssv":
		return CollectionSSV, nil
	case "tsv":
		return CollectionTSV, nil
	case "pipes":
		return CollectionPipes, nil
	default:
		return 0, fmt.Errorf("unknown collection format: %s", s)
	}
}

// Delimiter returns the join delimiter for the format. Exploded has
// none: every value repeats the key.
func (f CollectionFormat) Delimiter() string {
	switch f {
	case CollectionCSV:
		return ","
	case CollectionSSV:
		return " "
	case CollectionTSV:
		return "\t"
	case CollectionPipes:
		return "|"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (f CollectionFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *CollectionFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseCollectionFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Directive is one declarative metadata tag attached at type,
// operation, or argument scope. Use the constructors below rather than
// building the struct directly: they carry the vocabulary defaults.
type Directive struct {
	Kind             DirectiveKind    `json:"kind"`
	Values           []string         `json:"values,omitempty"`
	Expander         string           `json:"expander,omitempty"` // param scope only
	DecodeSlash      bool             `json:"decodeSlash"`        // requestLine scope only
	CollectionFormat CollectionFormat `json:"collectionFormat"`   // requestLine scope only
}

// Headers declares an ordered list of "Name: Value" entries at type or
// operation scope.
func Headers(values ...string) Directive {
	return Directive{Kind: DirectiveHeaders, Values: values}
}

// RequestLine declares the verb and path of an operation, with slash
// decoding on and the exploded collection format.
func RequestLine(value string) Directive {
	return RequestLineOpts(value, true, CollectionExploded)
}

// RequestLineOpts is RequestLine with explicit sub-options.
func RequestLineOpts(value string, decodeSlash bool, format CollectionFormat) Directive {
	return Directive{
		Kind:             DirectiveRequestLine,
		Values:           []string{value},
		DecodeSlash:      decodeSlash,
		CollectionFormat: format,
	}
}

// Body declares a literal or {var}-templated request body.
func Body(value string) Directive {
	return Directive{Kind: DirectiveBody, Values: []string{value}}
}

// Param binds an argument position to a path or form template
// variable using the default plain-string expansion.
func Param(name string) Directive {
	return Directive{Kind: DirectiveParam, Values: []string{name}}
}

// ParamWith is Param with a named value-expansion strategy.
func ParamWith(name, expander string) Directive {
	return Directive{Kind: DirectiveParam, Values: []string{name}, Expander: expander}
}

// QueryMap marks an argument position as a string-keyed map of
// dynamically named query values.
func QueryMap() Directive {
	return Directive{Kind: DirectiveQueryMap}
}

// HeaderMap marks an argument position as a string-keyed map of
// dynamically named header values.
func HeaderMap() Directive {
	return Directive{Kind: DirectiveHeaderMap}
}

// UnmarshalJSON decodes a directive, applying the requestLine default
// of decodeSlash=true when the field is absent.
func (d *Directive) UnmarshalJSON(data []byte) error {
	type alias Directive
	aux := struct {
		DecodeSlash *bool `json:"decodeSlash"`
		*alias
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DecodeSlash != nil {
		d.DecodeSlash = *aux.DecodeSlash
	} else if d.Kind == DirectiveRequestLine {
		d.DecodeSlash = true
	}
	return nil
}

// Value returns the first directive value, or "".
func (d Directive) Value() string {
	if len(d.Values) == 0 {
		return ""
	}
	return d.Values[0]
}
