package scenario

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
	schemaErr  error
)

// compiledSchema compiles the embedded schema once per process. The CUE
// context is cheap to keep alive and the schema never changes at runtime.
func compiledSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		root := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaVal = root.LookupPath(cue.ParsePath("#Scenario"))
		if !schemaVal.Exists() {
			schemaErr = fmt.Errorf("scenario schema: #Scenario definition not found")
		}
	})
	return schemaVal, schemaErr
}

// ValidateSchema unifies the scenario with the embedded CUE schema and
// reports the first constraint violation. The scenario is encoded through its
// JSON form, so field names here match the YAML/JSON tags.
func ValidateSchema(sc *Scenario) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	val := schema.Context().Encode(sc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Field: "schema", Message: err.Error()}
	}
	return nil
}
