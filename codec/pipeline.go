package codec

import (
	"bytes"
)

// engine is the part of a backend that differs between JSON libraries.
// pipeline wraps an engine with the checks and flag handling every backend
// shares, so all backends classify the same input the same way.
type engine interface {
	// marshal encodes v compactly without HTML escaping.
	marshal(v any) ([]byte, error)

	// marshalReport maps a marshal error to a Report.
	marshalReport(err error) Report

	valid(data []byte) bool

	// syntaxError describes why data is not valid JSON.
	syntaxError(data []byte) Report

	// tokens returns a token stream over data that reports numbers as
	// literals.
	tokens(data []byte) tokenSource

	indent(dst *bytes.Buffer, src []byte, prefix, indent string) error
}

type pipeline struct {
	name string
	eng  engine
}

// Compile-time interface check
var _ Codec = (*pipeline)(nil)

func (p *pipeline) Name() string {
	return p.name
}

func (p *pipeline) Serialize(v any, flags Flags, depth int) ([]byte, Report) {
	if r := walkValue(v); !r.OK() {
		return nil, r
	}

	out, err := p.eng.marshal(v)
	if err != nil {
		return nil, p.eng.marshalReport(err)
	}
	if r := scan(out, depth); !r.OK() {
		return nil, r
	}

	if flags.Has(FlagForceObject) || flags.Has(FlagNumericCheck) {
		tree, r := p.build(out, false, FlagUseNumber)
		if !r.OK() {
			return nil, r
		}
		out, err = p.eng.marshal(transform(tree, flags))
		if err != nil {
			return nil, p.eng.marshalReport(err)
		}
	}

	if flags.Has(FlagPrettyPrint) {
		var buf bytes.Buffer
		if err := p.eng.indent(&buf, out, "", "    "); err != nil {
			return nil, fail(StatusUnknown, -1, "indent: %v", err)
		}
		out = buf.Bytes()
	}
	if flags.Has(FlagEscapeHTML) {
		out = escapeHTML(out)
	}
	if flags.Has(FlagEscapeSlashes) {
		out = escapeSlashes(out)
	}
	if flags.Has(FlagEscapeUnicode) {
		out = escapeUnicode(out)
	}
	return out, Report{}
}

func (p *pipeline) Parse(data []byte, mapping bool, flags Flags, depth int) (any, Report) {
	if off := validUTF8(data); off >= 0 {
		return nil, fail(StatusUTF8, off, "malformed UTF-8 at offset %d", off)
	}
	if r := scan(data, depth); !r.OK() {
		return nil, r
	}
	if !p.eng.valid(data) {
		return nil, p.eng.syntaxError(data)
	}
	return p.build(data, mapping, flags)
}

func (p *pipeline) build(data []byte, mapping bool, flags Flags) (any, Report) {
	b := &builder{src: p.eng.tokens(data), mapping: mapping, flags: flags}
	return b.build()
}
