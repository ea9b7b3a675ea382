package jscan

import (
	"github.com/pkg/errors"
	"github.com/wI2L/jsondiff"
)

// DiffTemplates returns the RFC 6902 JSON Patch that turns template a into
// template b, computed over their document encodings. Equal templates yield
// an empty patch.
func DiffTemplates(a, b Template) (jsondiff.Patch, error) {
	ab, err := a.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "encode source template")
	}
	bb, err := b.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "encode target template")
	}
	patch, err := jsondiff.CompareJSON(ab, bb)
	if err != nil {
		return nil, errors.Wrap(err, "diff templates")
	}
	return patch, nil
}
