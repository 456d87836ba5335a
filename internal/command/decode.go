package command

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/errors"
)

// DecodeArgs parses a JSON object into Args. Numbers are kept as
// json.Number so large integer IDs survive intact until Validate.
func DecodeArgs(data []byte) (Args, error) {
	var args Args
	if err := decodeJSON(data, &args); err != nil {
		return nil, api.Validation("arguments are not a valid JSON object: %v", err)
	}
	if args == nil {
		args = Args{}
	}
	return args, nil
}

// DecodeValue parses one JSON value with numbers kept as json.Number.
func DecodeValue(data []byte) (any, error) {
	var v any
	if err := decodeJSON(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
