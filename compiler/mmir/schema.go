package mmir

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"tlog.app/go/errors"
)

//go:embed schema.json
var schemaJSON []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse schema")
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource("schema.json", doc)
	if err != nil {
		return nil, errors.Wrap(err, "add schema")
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}

	return sch, nil
})

// Schema returns the JSON Schema (draft 2020-12) of the wire encoding of Output.
func Schema() []byte { return schemaJSON }

// Validate checks a document decoded by jsonschema.UnmarshalJSON.
func Validate(doc any) error {
	sch, err := compiled()
	if err != nil {
		return err
	}

	err = sch.Validate(doc)
	if err != nil {
		return errors.Wrap(err, "validate")
	}

	return nil
}

func ValidateJSON(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "decode")
	}

	return Validate(doc)
}
