package schemas

import (
	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed.schema.json
var seedSchema []byte

// SeedSchema returns the JSON Schema of `pmo seed` documents.
func SeedSchema() []byte {
	return seedSchema
}

// ValidateSeed validates a seed document against the embedded seed schema.
func ValidateSeed(document []byte) error {
	return validate("seed.schema.json",
		gojsonschema.NewBytesLoader(seedSchema),
		gojsonschema.NewBytesLoader(document))
}
