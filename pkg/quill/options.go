package quill

import "time"

// Options carries per-call request options for the transport executing
// a resolved template. An Options-typed argument is never part of the
// request body; the classifier skips it entirely.
type Options struct {
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	FollowRedirects bool
}

// DefaultOptions returns the transport defaults
func DefaultOptions() Options {
	return Options{
		ConnectTimeout:  10 * time.Second,
		ReadTimeout:     60 * time.Second,
		FollowRedirects: true,
	}
}

// OptionsTypeRef describes the Options type for introspection
// facilities building descriptors by hand.
func OptionsTypeRef() *TypeRef {
	return &TypeRef{Name: "quill.Options", Kind: TypeOptions}
}
