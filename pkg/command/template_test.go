package command_test

import (
	"strings"
	"testing"

	"github.com/serverlessresearch/mcadmin/pkg/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {

	assert.Nil(t, command.Params("mc admin user list"))
	assert.Equal(t, []string{"flags", "target", "username"},
		command.Params("mc {flags} admin user info {target} {username} {target}"))
}

func TestRenderPositionalAndFlags(t *testing.T) {

	out, err := command.Render("prog {a} {b} {flags}", command.Args{"a": "x", "b": "y", "extra": true}, command.FlagCodec{})
	require.NoError(t, err)

	assert.Equal(t, "prog x y --extra", out)
	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, "}")
}

func TestRenderMissingSlot(t *testing.T) {

	_, err := command.Render("mc {flags} admin user add {target} {username}", command.Args{"target": "local"}, command.FlagCodec{})
	require.Error(t, err)

	rerr, ok := err.(*command.RenderError)
	require.True(t, ok)
	assert.Equal(t, "username", rerr.Slot)
}

func TestRenderRejectsListInSlot(t *testing.T) {

	_, err := command.Render("mc {flags} admin group add {target} {group} {members}",
		command.Args{"target": "local", "group": "g", "members": []string{"a", "b"}}, command.FlagCodec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "members")
}

func TestRenderCallerFlagsWin(t *testing.T) {

	out, err := command.Render("mc {flags} ls {target}", command.Args{"target": "local", "flags": "--insecure", "json": true}, command.FlagCodec{})
	require.NoError(t, err)
	assert.Equal(t, "mc --insecure ls local", out)
}

func TestCommandRender(t *testing.T) {

	cmd := command.New("admin-user-list", "mc {flags} admin user list {target}")
	out, err := cmd.Render(command.Args{"target": "local"}, command.FlagCodec{})
	require.NoError(t, err)

	assert.Equal(t, "mc --json admin user list local", out)
	assert.Equal(t, "mc", cmd.Program())
}

func TestCommandRenderEmptyOptionalSlot(t *testing.T) {

	cmd := command.New("config-host-list", "mc {flags} config host list {alias}")
	out, err := cmd.Render(command.Args{"alias": ""}, command.FlagCodec{})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "config host list"))
}

func TestRenderQuotesValues(t *testing.T) {

	cases := map[string]string{
		`ab\cd`:   `'ab\cd'`,
		`it's`:    `'it'\''s'`,
		`a  b`:    `'a  b'`,
		`x;echo`:  `'x;echo'`,
		`$HOME`:   `'$HOME'`,
		`s3cr3t`:  `s3cr3t`,
		`a@b:c/d`: `a@b:c/d`,
	}
	for value, want := range cases {
		out, err := command.Render("mc {flags} admin user add {target} {username} {password}",
			command.Args{"target": "local", "username": "bob", "password": value}, command.FlagCodec{})
		require.NoError(t, err)
		assert.Equal(t, "mc admin user add local bob "+want, out, value)
	}
}

func TestRenderWordsSlot(t *testing.T) {

	out, err := command.Render("mc admin group add {target} {group} {members}",
		command.Args{"target": "local", "group": "g", "members": command.Words{"a", "it's"}}, command.FlagCodec{})
	require.NoError(t, err)
	assert.Equal(t, `mc admin group add local g a 'it'\''s'`, out)

	out, err = command.Render("mc admin group remove {target} {group} {members}",
		command.Args{"target": "local", "group": "g", "members": command.Words{}}, command.FlagCodec{})
	require.NoError(t, err)
	assert.Equal(t, "mc admin group remove local g", out)
}

func TestQuote(t *testing.T) {

	assert.Equal(t, "''", command.Quote(""))
	assert.Equal(t, "plain", command.Quote("plain"))
	assert.Equal(t, "'#x'", command.Quote("#x"))
	assert.Equal(t, "'~/bin/mc'", command.Quote("~/bin/mc"))
	assert.Equal(t, `'a"b'`, command.Quote(`a"b`))
}
