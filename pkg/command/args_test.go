package command_test

import (
	"testing"

	"github.com/serverlessresearch/mcadmin/pkg/command"

	"github.com/stretchr/testify/assert"
)

func TestArgsJoinList(t *testing.T) {

	args := command.Args{"members": []string{"rockstar", "test"}, "other": []interface{}{"a", 1}, "name": "x y", "empty": ""}
	args.JoinList("members")
	args.JoinList("other")
	args.JoinList("name")
	args.JoinList("empty")

	assert.Equal(t, command.Words{"rockstar", "test"}, args["members"])
	assert.Equal(t, command.Words{"a", "1"}, args["other"])
	assert.Equal(t, command.Words{"x", "y"}, args["name"])
	assert.Equal(t, command.Words{}, args["empty"])
}

func TestArgsCloneAndDefaults(t *testing.T) {

	var empty command.Args
	clone := empty.Clone()
	clone.SetDefault("alias", "")
	assert.True(t, clone.Has("alias"))
	assert.False(t, empty.Has("alias"))

	args := command.Args{"alias": "minio"}
	args.SetDefault("alias", "")
	assert.Equal(t, "minio", args["alias"])
	assert.Equal(t, []string{"alias"}, args.Keys())
}
