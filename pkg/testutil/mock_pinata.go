package testutil

import (
	"context"
	"io"
)

type MockPinataEndpoint struct {
	PinFileFunc func(ctx context.Context, name string, f io.Reader) (string, error)
}

func (e *MockPinataEndpoint) PinFile(ctx context.Context, name string, f io.Reader) (string, error) {
	if e.PinFileFunc == nil {
		panic("not implemented")
	}

	return e.PinFileFunc(ctx, name, f)
}
