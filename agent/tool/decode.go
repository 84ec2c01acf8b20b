package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	contractx "github.com/colomboai/cairo/agent/contract"
)

// Decode maps validated tool arguments onto a request struct using its json tags.
func Decode[T any](args map[string]any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &out,
		ErrorUnused: true,
	})
	if err != nil {
		return out, fmt.Errorf("%w: build decoder: %v", contractx.ErrValidation, err)
	}
	if err := decoder.Decode(args); err != nil {
		return out, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	return out, nil
}

// bind adapts a typed call to a Handler, decoding args into T first.
func bind[T any](call func(ctx context.Context, req T) (any, error)) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		req, err := Decode[T](args)
		if err != nil {
			return nil, err
		}
		return call(ctx, req)
	}
}
