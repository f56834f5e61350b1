package generator

// Options configures code generation. The zero value is usable: Pragma
// and PragmaFrag default to the React 16+ factory convention named in
// the glossary, and a `"use strict";` directive is prefixed by default.
type Options struct {
	Pragma           string
	PragmaFrag       string
	DisableUseStrict bool

	// EntityDecoder decodes HTML entities in child text: the generator
	// has no browser DOM to delegate to, so a deterministic substitute
	// must be supplied. Nil uses DefaultEntityDecoder.
	EntityDecoder EntityDecoder
}

const (
	defaultPragma     = "React.createElement"
	defaultPragmaFrag = "React.Fragment"
)

func (o *Options) pragma() string {
	if o == nil || o.Pragma == "" {
		return defaultPragma
	}
	return o.Pragma
}

func (o *Options) pragmaFrag() string {
	if o == nil || o.PragmaFrag == "" {
		return defaultPragmaFrag
	}
	return o.PragmaFrag
}

func (o *Options) addUseStrict() bool {
	return o == nil || !o.DisableUseStrict
}

func (o *Options) decoder() EntityDecoder {
	if o == nil || o.EntityDecoder == nil {
		return DefaultEntityDecoder{}
	}
	return o.EntityDecoder
}

// EntityDecoder decodes HTML character references in JSX text content.
// A browser-backed implementation can delegate to the DOM; the default
// here is a small deterministic table.
type EntityDecoder interface {
	Decode(s string) string
}
