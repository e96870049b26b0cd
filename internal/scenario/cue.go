package scenario

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/splice/internal/fragment"
)

func decodeCUE(path string, data []byte) (*Scenario, error) {
	b := newBuilder(path)

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(path, "compiling CUE", err)
	}

	var err error
	if b.template, err = optionalString(value, "template"); err != nil {
		return nil, cueLoadError(path, "template", err)
	}
	if b.output, err = optionalString(value, "output"); err != nil {
		return nil, cueLoadError(path, "output", err)
	}
	if f := value.LookupPath(cue.ParsePath("format")); f.Exists() {
		if b.format, err = f.Bool(); err != nil {
			return nil, cueLoadError(path, "format", err)
		}
	}

	if fragments := value.LookupPath(cue.ParsePath("fragments")); fragments.Exists() {
		iter, err := fragments.Fields()
		if err != nil {
			return nil, cueLoadError(path, "fragments", err)
		}
		for iter.Next() {
			if err := b.addCUEFragment(iter.Label(), iter.Value()); err != nil {
				return nil, err
			}
		}
	}

	if energyplus := value.LookupPath(cue.ParsePath("energyplus")); energyplus.Exists() {
		iter, err := energyplus.Fields()
		if err != nil {
			return nil, cueLoadError(path, "energyplus", err)
		}
		for iter.Next() {
			b.energyplus[iter.Label()] = iter.Value()
		}
	}

	return b.build()
}

func (b *builder) addCUEFragment(marker string, v cue.Value) error {
	var text *string
	if t := v.LookupPath(cue.ParsePath("text")); t.Exists() {
		s, err := t.String()
		if err != nil {
			return cueLoadError(b.path, "fragment "+marker+": text", err)
		}
		text = &s
	}

	generator, err := optionalString(v, "generator")
	if err != nil {
		return cueLoadError(b.path, "fragment "+marker+": generator", err)
	}

	// cue.Value decodes itself, so it serves as fragment.Params directly.
	var params fragment.Params
	if p := v.LookupPath(cue.ParsePath("params")); p.Exists() {
		params = p
	}
	return b.addFragment(marker, text, generator, params)
}

// optionalString returns "" when the field is absent.
func optionalString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", nil
	}
	return f.String()
}

// cueLoadError converts a CUE error to a LoadError, keeping the first position.
func cueLoadError(path, context string, err error) *LoadError {
	le := &LoadError{
		Kind:    ErrKindInvalid,
		Path:    path,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
