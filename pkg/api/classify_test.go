package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ClassifyStatus(t *testing.T) {
	require.NoError(t, (&Response{Code: 200}).ClassifyStatus())
	require.NoError(t, (&Response{Code: 201}).ClassifyStatus())

	require.ErrorIs(t, (&Response{Code: 403}).ClassifyStatus(), ErrAccessDenied)
	require.ErrorIs(t, (&Response{Code: 429}).ClassifyStatus(), ErrRateLimited)
	require.ErrorIs(t, (&Response{Code: 404}).ClassifyStatus(), ErrNotFound)

	err := (&Response{Code: 502, RawBody: []byte("bad gateway")}).ClassifyStatus()
	var transportErr TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, 502, transportErr.Code)
	require.Contains(t, transportErr.Error(), "bad gateway")
}
