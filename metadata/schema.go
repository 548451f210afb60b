package metadata

import (
	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/descriptive_metadata.json
var schemaDocument []byte

var documentSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDocument))
	if err != nil {
		panic(err) // Embedded, not user input.
	}
	return s
}

// CheckDocument validates a JSON document, as produced by ToDict or decoded
// from disk, against the schema of the persisted metadata. It returns the
// issues found, if any.
func CheckDocument(doc interface{}) ([]string, error) {
	res, err := documentSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, item := range res.Errors() {
		issues = append(issues, item.String())
	}
	return issues, nil
}
