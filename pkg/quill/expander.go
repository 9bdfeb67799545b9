package quill

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Expander converts an argument value into its template string form.
// The default strategy is plain string conversion; a Param directive
// may name another one.
type Expander interface {
	Expand(value any) string
}

// ExpanderFunc adapts a function to the Expander interface.
type ExpanderFunc func(value any) string

// Expand implements Expander
func (f ExpanderFunc) Expand(value any) string {
	return f(value)
}

// Names of the built-in expansion strategies.
const (
	ExpanderString   = "string" // default, never recorded on the metadata
	ExpanderUUID     = "uuid"
	ExpanderUnixTime = "unixtime"
	ExpanderRFC3339  = "rfc3339"
)

// ToStringExpander is the default plain string conversion.
var ToStringExpander Expander = ExpanderFunc(func(value any) string {
	return fmt.Sprintf("%v", value)
})

// UUIDExpander renders uuid.UUID values canonically and falls back to
// plain string conversion for anything else.
var UUIDExpander Expander = ExpanderFunc(func(value any) string {
	if id, ok := value.(uuid.UUID); ok {
		return id.String()
	}
	return fmt.Sprintf("%v", value)
})

// UnixTimeExpander renders time.Time values as Unix seconds.
var UnixTimeExpander Expander = ExpanderFunc(func(value any) string {
	if t, ok := value.(time.Time); ok {
		return fmt.Sprintf("%d", t.Unix())
	}
	return fmt.Sprintf("%v", value)
})

// RFC3339Expander renders time.Time values in RFC 3339 form.
var RFC3339Expander Expander = ExpanderFunc(func(value any) string {
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", value)
})

func builtinExpanders() map[string]Expander {
	return map[string]Expander{
		ExpanderString:   ToStringExpander,
		ExpanderUUID:     UUIDExpander,
		ExpanderUnixTime: UnixTimeExpander,
		ExpanderRFC3339:  RFC3339Expander,
	}
}
