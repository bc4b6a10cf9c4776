package rowcast

// registry.go provides the converter registry.
//
// Converters are looked up by an explicit type tag on a registry instance
// that callers build and pass in; nothing is resolved through package-level
// state. DefaultRegistry pre-populates the standard set and Clone lets a
// caller override entries per parse without affecting anyone else.

import (
	"fmt"
	"maps"
)

// Registry maps type tags to converters. Entries are registered at startup
// and the registry is read-only during a parse.
type Registry struct {
	byTag map[string]any
}

// Tags used by DefaultRegistry.
const (
	TagBool    = "bool"
	TagInt     = "int"
	TagUint    = "uint"
	TagFloat   = "float"
	TagNumeric = "numeric"
	TagString  = "string"
	TagDate    = "date"
	TagURL     = "url"
	TagPath    = "path"
	TagUUID    = "uuid"
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[string]any)}
}

// DefaultRegistry returns a registry populated with the standard
// converters under the Tag* constants.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterConverter(r, TagBool, BoolConv())
	RegisterConverter(r, TagInt, IntConv())
	RegisterConverter(r, TagUint, UintConv())
	RegisterConverter(r, TagFloat, FloatConv())
	RegisterConverter(r, TagNumeric, NumericConv())
	RegisterConverter(r, TagString, StringConv())
	RegisterConverter(r, TagDate, DateConv())
	RegisterConverter(r, TagURL, URLConv())
	RegisterConverter(r, TagPath, PathConv())
	RegisterConverter(r, TagUUID, UUIDConv())
	return r
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	maps.Copy(c.byTag, r.byTag)
	return c
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	return len(r.byTag)
}

// RegisterConverter adds or replaces the converter for a tag.
func RegisterConverter[T any](r *Registry, tag string, conv Converter[T]) {
	r.byTag[tag] = conv
}

// ConverterFor returns the converter registered for a tag. It reports
// false when the tag is unknown or registered at a different type.
func ConverterFor[T any](r *Registry, tag string) (Converter[T], bool) {
	v, ok := r.byTag[tag]
	if !ok {
		return nil, false
	}
	conv, ok := v.(Converter[T])
	return conv, ok
}

// MustConverterFor is ConverterFor for wiring done at startup, where a
// missing tag is a programming error.
func MustConverterFor[T any](r *Registry, tag string) Converter[T] {
	conv, ok := ConverterFor[T](r, tag)
	if !ok {
		panic(fmt.Sprintf("no converter registered for tag %q at this type", tag))
	}
	return conv
}
