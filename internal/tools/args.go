// Package tools holds helpers shared by the tool handler packages.
package tools

import (
	"github.com/mitchellh/mapstructure"
)

// DecodeArgs maps a raw argument map onto a typed parameter struct. Weak
// typing tolerates callers sending numbers or booleans where the schema
// says string.
func DecodeArgs(raw map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
