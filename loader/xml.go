package loader

import (
	"io"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
)

func init() {
	// match xmltodict, mxj defaults to "-"
	mxj.SetAttrPrefix("@")
}

// decodeXML converts an XML document into nested mappings. Repeated sibling
// elements become sequences, all leaf values stay strings
func decodeXML(r io.Reader) (jsondiff.Value, error) {
	m, err := mxj.NewMapXmlReader(r)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, errors.New("empty document")
	}
	return jsondiff.FromInterface(map[string]interface{}(m))
}
