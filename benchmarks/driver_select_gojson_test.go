//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/jscan"
	drv "github.com/reoring/jscan/source/gojson"
)

func init() {
	jscan.SetJSONDriver(drv.Driver())
}
