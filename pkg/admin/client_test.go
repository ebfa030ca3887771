package admin_test

import (
	"context"
	"io/ioutil"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/executor"
	"github.com/serverlessresearch/mcadmin/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	lines  []string
	output string
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Invoke(ctx context.Context, line string) (*executor.Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return &executor.Output{Stdout: []byte(r.output)}, nil
}

func (r *recorder) Payload(out *executor.Output) []byte { return out.Stdout }

func newClient(output string) (*admin.Client, *recorder) {
	rec := &recorder{output: output}
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return admin.NewClient(executor.New(rec, logger)), rec
}

func TestRenderedCommands(t *testing.T) {

	client, _ := newClient("")

	cases := []struct {
		op   string
		args command.Args
		want string
	}{
		{admin.OpHostAdd, command.Args{"alias": "myminio", "url": "http://localhost:9000", "username": "u", "password": "p"},
			"mc --json config host add myminio http://localhost:9000 u p"},
		{admin.OpHostList, nil, "mc --json config host list"},
		{admin.OpHostList, command.Args{"alias": "coolname"}, "mc --json config host list coolname"},
		{admin.OpUserAdd, command.Args{"target": "local", "username": "rockstar", "password": "secret"},
			"mc --json admin user add local rockstar secret"},
		{admin.OpUserList, command.Args{"target": "local"}, "mc --json admin user list local"},
		{admin.OpSvcacctAdd, command.Args{"target": "local", "username": "rockstar"},
			"mc --json admin user svcacct add local rockstar"},
		{admin.OpSvcacctAdd, command.Args{"target": "local", "username": "rockstar", "access_key": "ak", "policy": "/tmp/p.json"},
			"mc --json admin user svcacct add --access-key ak --policy /tmp/p.json local rockstar"},
		{admin.OpSvcacctEdit, command.Args{"target": "local", "name": "sa", "secret_key": "sk"},
			"mc --json admin user svcacct edit --secret-key sk local sa"},
		{admin.OpGroupAdd, command.Args{"target": "local", "group": "admins", "members": []string{"rockstar", "test"}},
			"mc --json admin group add local admins rockstar test"},
		{admin.OpGroupRemove, command.Args{"target": "local", "group": "admins"},
			"mc --json admin group remove local admins"},
		{admin.OpPolicyAdd, command.Args{"target": "local", "name": "ro", "file": "/tmp/ro.json"},
			"mc --json admin policy add local ro /tmp/ro.json"},
		{admin.OpPolicySet, command.Args{"target": "local", "name": "admins", "user": "rockstar"},
			"mc --json admin policy set local admins user=rockstar"},
		{admin.OpPolicySet, command.Args{"target": "local", "name": "admins", "group": "ops"},
			"mc --json admin policy set local admins group=ops"},
		{admin.OpServer, command.Args{"dir": "/data", "address": ":9008"},
			"minio --json server --address :9008 /data"},
		{admin.OpServiceRestart, command.Args{"target": "local"}, "mc --json admin service restart local"},
		{admin.OpRemoveBucket, command.Args{"target": "local/bucket", "force": true, "dangerous": false},
			"mc --json rb --force local/bucket"},
		{admin.OpCopy, command.Args{"source": "/tmp/f", "target": "local/bucket/f"}, "mc --json cp /tmp/f local/bucket/f"},
		{admin.OpUserList, command.Args{"target": "local", "insecure": true}, "mc --insecure --json admin user list local"},
	}

	for _, c := range cases {
		got, err := client.Render(c.op, c.args)
		require.NoError(t, err, c.op)
		assert.Equal(t, c.want, got, c.op)
	}
}

func TestBuildDoesNotMutateCallerArgs(t *testing.T) {

	client, _ := newClient("")
	args := command.Args{"target": "local", "group": "admins", "members": []string{"a", "b"}}

	_, err := client.Render(admin.OpGroupAdd, args)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, args["members"])
}

func TestPolicySetConflict(t *testing.T) {

	client, rec := newClient("")

	_, err := client.PolicySet(context.Background(), command.Args{"target": "local", "name": "p", "user": "u", "group": "g"})
	require.Error(t, err)
	assert.Equal(t, admin.ErrConflictingArgs, errors.Cause(err))
	assert.Empty(t, rec.lines)
}

func TestUnknownOperation(t *testing.T) {

	client, _ := newClient("")

	_, err := client.Do(context.Background(), "admin-user-explode", nil)
	assert.Equal(t, admin.ErrUnknownOperation, errors.Cause(err))

	_, err = client.Go(context.Background(), "admin-user-explode", nil).Wait()
	assert.Equal(t, admin.ErrUnknownOperation, errors.Cause(err))
}

func TestServerHasNoDeadline(t *testing.T) {

	cmd, _, err := admin.Build(admin.OpServer, command.Args{"dir": "/data"})
	require.NoError(t, err)
	assert.True(t, cmd.NoDeadline)

	cmd, _, err = admin.Build(admin.OpUserList, command.Args{"target": "local"})
	require.NoError(t, err)
	assert.False(t, cmd.NoDeadline)
}

func TestUserInfoResponse(t *testing.T) {

	client, rec := newClient(`{"status":"success","accessKey":"rockstar","userStatus":"enabled"}`)

	resp, err := admin.Checked(client.UserInfo(context.Background(), command.Args{"target": "local", "username": "rockstar"}))
	require.NoError(t, err)

	assert.Equal(t, admin.OpUserInfo, resp.Name)
	assert.Equal(t, "enabled", resp.Records()[0]["userStatus"])
	assert.Equal(t, []string{"mc --json admin user info local rockstar"}, rec.lines)
}

func TestCheckedOperationError(t *testing.T) {

	client, _ := newClient(`{"status":"error","error":{"message":"Unable to add user","cause":{"message":"access denied"}}}`)

	resp, err := admin.Checked(client.UserAdd(context.Background(), command.Args{"target": "local", "username": "u", "password": "p"}))
	require.Error(t, err)
	require.NotNil(t, resp)

	opErr, ok := err.(*response.OperationError)
	require.True(t, ok)
	assert.Equal(t, "Unable to add user", opErr.Message)
	assert.Equal(t, "access denied", opErr.Cause)
}

func TestGoAndDoAll(t *testing.T) {

	client, rec := newClient(`{"status":"success"}`)

	call := client.Go(context.Background(), admin.OpGroupEnable, command.Args{"target": "local", "group": "admins"})
	resp, err := call.Wait()
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	resps, err := client.DoAll(context.Background(), []admin.Request{
		{Operation: admin.OpUserDisable, Args: command.Args{"target": "local", "username": "a"}},
		{Operation: admin.OpUserDisable, Args: command.Args{"target": "local", "username": "b"}},
	}, 1)
	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.Equal(t, "mc --json admin user disable local b", resps[1].Command)
	assert.Len(t, rec.lines, 3)
}

func TestOperationsSorted(t *testing.T) {

	ops := admin.Operations()
	require.NotEmpty(t, ops)
	for i := 1; i < len(ops); i++ {
		assert.True(t, ops[i-1].Name < ops[i].Name)
	}
	for _, op := range ops {
		assert.NotEmpty(t, op.Usage, op.Name)
	}
}

func TestSubcommandBooleansIgnoreCodec(t *testing.T) {

	for _, omitFalse := range []bool{false, true} {
		rec := &recorder{}
		logger := logrus.New()
		logger.SetOutput(ioutil.Discard)
		e := executor.New(rec, logger)
		e.Codec = command.FlagCodec{OmitFalse: omitFalse}
		client := admin.NewClient(e)

		got, err := client.Render(admin.OpRemoveBucket, command.Args{"target": "local/bucket", "force": false, "dangerous": false})
		require.NoError(t, err)
		assert.Equal(t, "mc --json rb local/bucket", got)

		got, err = client.Render(admin.OpList, command.Args{"target": "local", "recursive": true, "versions": false})
		require.NoError(t, err)
		assert.Equal(t, "mc --json ls --recursive local", got)
	}
}

func TestRenderedCommandsQuoteValues(t *testing.T) {

	client, _ := newClient("")

	got, err := client.Render(admin.OpUserAdd, command.Args{"target": "local", "username": "bob", "password": `it's;$x`})
	require.NoError(t, err)
	assert.Equal(t, `mc --json admin user add local bob 'it'\''s;$x'`, got)

	got, err = client.Render(admin.OpSvcacctAdd, command.Args{"target": "local", "username": "bob", "secret_key": "a b"})
	require.NoError(t, err)
	assert.Equal(t, "mc --json admin user svcacct add --secret-key 'a b' local bob", got)

	got, err = client.Render(admin.OpGroupAdd, command.Args{"target": "local", "group": "ops team", "members": []string{"a", "b c"}})
	require.NoError(t, err)
	assert.Equal(t, "mc --json admin group add local 'ops team' a 'b c'", got)
}
