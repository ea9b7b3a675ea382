package source

import (
	"github.com/reoring/jscan"
	drvgojson "github.com/reoring/jscan/source/gojson"
)

// Importing this package makes go-json the driver behind jscan.JSONBytes and
// jscan.JSONReader.
func init() { jscan.SetJSONDriver(drvgojson.Driver()) }
