// Package jscan checks JSON data against a template describing its expected
// shape and reports where the two disagree.
//
//   - A Template is an ordered set of fields, each described by a primitive
//     type name, a nested object, or an array with an item descriptor.
//   - Validate walks template and data together and returns Issues: missing
//     fields, additional fields and type mismatches, addressed by FieldPath.
//   - Check and CheckText parse text first; unparseable input becomes a
//     single ParseError issue.
//   - ParseData decodes through a pluggable JSONDriver into ordered values, so
//     issues follow the member order of the input.
//
// Design policy:
//   - Keep only public APIs in the root package; put token handling under
//     internal/.
//   - Place drivers under source/, reporting under report/, and the CLI under
//     cmd/jscan.
//   - Findings are data, not errors. Library calls that can really fail return
//     error values.
//
// Typical usage:
//
//	t, err := jscan.ParseTemplate(ctx, jscan.JSONBytes(templateDoc))
//	issues := jscan.CheckText(ctx, t, input, jscan.All)
//	for _, it := range issues {
//	    fmt.Println(it.IssueType, it.Field, it.ExpectedType, it.ActualType)
//	}
package jscan
