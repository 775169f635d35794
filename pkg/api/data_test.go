package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_JSON_Get(t *testing.T) {
	j, err := bytesToJSON([]byte(`{
		"ok": true,
		"result": {
			"user": {"id": 42, "username": "alice"},
			"status": "member"
		},
		"results": [{"user_id": "1"}]
	}`))
	require.NoError(t, err)

	ok, err := j.GetBool("ok")
	require.NoError(t, err)
	require.True(t, ok)

	id, err := j.GetInt("result.user.id")
	require.NoError(t, err)
	require.Equal(t, 42, id)

	username, err := j.GetString("result.user.username")
	require.NoError(t, err)
	require.Equal(t, "alice", username)

	results, err := j.GetArray("results")
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = j.GetString("result.user.missing")
	require.Error(t, err)

	_, err = j.GetInt("result.status")
	require.Error(t, err)
}

func Test_Parameter_Encode(t *testing.T) {
	p := Parameter{"limit": "100", "cursor": "a b+c"}
	require.Equal(t, "cursor=a%20b%2Bc&limit=100", p.Encode())
}
