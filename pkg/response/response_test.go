package response_test

import (
	"encoding/json"
	"testing"

	"github.com/serverlessresearch/mcadmin/pkg/normalize"
	"github.com/serverlessresearch/mcadmin/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingleObject(t *testing.T) {

	r, err := response.New("mc --json admin user info local x", "admin-user-info",
		[]byte(`{"status":"success","accessKey":"x"}`+"\n"))
	require.NoError(t, err)

	assert.Equal(t, "success", r.Status)
	assert.Equal(t, "x", r.Records()[0]["accessKey"])
	assert.Equal(t, "Response[name='admin-user-info', status='success']", r.String())
	assert.True(t, r.Succeeded())
}

func TestListContentDefaultsToSuccess(t *testing.T) {

	r, err := response.New("mc --json admin user list local", "admin-user-list",
		[]byte("{\"status\":\"error\"}\n{\"status\":\"success\"}\n"))
	require.NoError(t, err)

	assert.Equal(t, "success", r.Status)
	assert.Len(t, r.Records(), 2)
	assert.NoError(t, response.CheckError(r))
}

func TestScalarAndOddStatus(t *testing.T) {

	r, err := response.New("c", "n", []byte(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "success", r.Status)
	assert.Nil(t, r.Records())

	r, err = response.New("c", "n", []byte(`{"status":7}`))
	require.NoError(t, err)
	assert.Equal(t, "success", r.Status)
}

func TestNewDecodeFailure(t *testing.T) {

	_, err := response.New("c", "n", []byte("not json at all"))
	require.Error(t, err)

	_, ok := err.(*normalize.DecodeError)
	assert.True(t, ok)
}

func TestCheckError(t *testing.T) {

	r, err := response.New("c", "admin-user-add",
		[]byte(`{"status":"error","error":{"message":"denied","cause":{"message":"no perm"}}}`))
	require.NoError(t, err)
	assert.False(t, r.Succeeded())

	err = response.CheckError(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
	assert.Contains(t, err.Error(), "no perm")

	opErr, ok := err.(*response.OperationError)
	require.True(t, ok)
	assert.Equal(t, "admin-user-add", opErr.Name)
}

func TestCheckErrorMissingFields(t *testing.T) {

	r, err := response.New("c", "n", []byte(`{"status":"error"}`))
	require.NoError(t, err)

	err = response.CheckError(r)
	require.Error(t, err)
	assert.Equal(t, ":", err.Error())

	assert.NoError(t, response.CheckError(nil))
}

func TestMarshalIncludesOutput(t *testing.T) {

	raw := "{\"status\":\"success\",\"accessKey\":\"x\"}\n"
	r, err := response.New("mc --json admin user info local x", "admin-user-info", []byte(raw))
	require.NoError(t, err)

	out, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Len(t, fields, 6)
	assert.Equal(t, raw, fields["output"])
	assert.Equal(t, "mc --json admin user info local x", fields["command"])
	assert.Equal(t, "admin-user-info", fields["name"])
	assert.Equal(t, r.JSON, fields["json"])
	assert.Equal(t, "success", fields["status"])
	assert.Equal(t, "x", fields["content"].(map[string]interface{})["accessKey"])
}
