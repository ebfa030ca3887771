// Handles the per-area commands ("mcadmin user add", "mcadmin bucket ls", ...).
// They are generated from a table: positional arguments fill the named
// operation arguments in order and --arg supplies the optional ones.

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/command"
)

type opCommand struct {
	use       string
	operation string
	// Positional argument names. A trailing "..." collects the remaining
	// words into a list.
	positional []string
	optional   int
}

var opGroups = []struct {
	use   string
	short string
	ops   []opCommand
}{
	{"host", "Manage storage host aliases", []opCommand{
		{use: "add", operation: admin.OpHostAdd, positional: []string{"alias", "url", "username", "password"}},
		{use: "list", operation: admin.OpHostList, positional: []string{"alias"}, optional: 1},
	}},
	{"user", "Manage users", []opCommand{
		{use: "add", operation: admin.OpUserAdd, positional: []string{"target", "username", "password"}},
		{use: "remove", operation: admin.OpUserRemove, positional: []string{"target", "username"}},
		{use: "enable", operation: admin.OpUserEnable, positional: []string{"target", "username"}},
		{use: "disable", operation: admin.OpUserDisable, positional: []string{"target", "username"}},
		{use: "list", operation: admin.OpUserList, positional: []string{"target"}},
		{use: "info", operation: admin.OpUserInfo, positional: []string{"target", "username"}},
	}},
	{"svcacct", "Manage service accounts", []opCommand{
		{use: "add", operation: admin.OpSvcacctAdd, positional: []string{"target", "username"}},
		{use: "remove", operation: admin.OpSvcacctRemove, positional: []string{"target", "name"}},
		{use: "enable", operation: admin.OpSvcacctEnable, positional: []string{"target", "name"}},
		{use: "disable", operation: admin.OpSvcacctDisable, positional: []string{"target", "name"}},
		{use: "list", operation: admin.OpSvcacctList, positional: []string{"target"}},
		{use: "edit", operation: admin.OpSvcacctEdit, positional: []string{"target", "name"}},
	}},
	{"group", "Manage groups", []opCommand{
		{use: "add", operation: admin.OpGroupAdd, positional: []string{"target", "group", "members..."}},
		{use: "remove", operation: admin.OpGroupRemove, positional: []string{"target", "group", "members..."}, optional: 1},
		{use: "info", operation: admin.OpGroupInfo, positional: []string{"target", "group"}},
		{use: "list", operation: admin.OpGroupList, positional: []string{"target"}},
		{use: "enable", operation: admin.OpGroupEnable, positional: []string{"target", "group"}},
		{use: "disable", operation: admin.OpGroupDisable, positional: []string{"target", "group"}},
	}},
	{"policy", "Manage canned policies", []opCommand{
		{use: "add", operation: admin.OpPolicyAdd, positional: []string{"target", "name", "file"}},
		{use: "remove", operation: admin.OpPolicyRemove, positional: []string{"target", "name"}},
		{use: "list", operation: admin.OpPolicyList, positional: []string{"target"}},
		{use: "info", operation: admin.OpPolicyInfo, positional: []string{"target", "name"}},
		{use: "set", operation: admin.OpPolicySet, positional: []string{"target", "name"}},
	}},
	{"service", "Restart or stop servers", []opCommand{
		{use: "restart", operation: admin.OpServiceRestart, positional: []string{"target"}},
		{use: "stop", operation: admin.OpServiceStop, positional: []string{"target"}},
	}},
	{"bucket", "Work with buckets and objects", []opCommand{
		{use: "ls", operation: admin.OpList, positional: []string{"target"}},
		{use: "mb", operation: admin.OpMakeBucket, positional: []string{"target"}},
		{use: "rb", operation: admin.OpRemoveBucket, positional: []string{"target"}},
		{use: "cp", operation: admin.OpCopy, positional: []string{"source", "target"}},
	}},
}

// bindPositional maps words onto the names of oc.positional.
func (oc opCommand) bindPositional(words []string) command.Args {
	args := command.Args{}
	for i, name := range oc.positional {
		if strings.HasSuffix(name, "...") {
			if i < len(words) {
				args[strings.TrimSuffix(name, "...")] = append([]string(nil), words[i:]...)
			}
			break
		}
		if i < len(words) {
			args[name] = words[i]
		}
	}
	return args
}

func (oc opCommand) usage() string {
	parts := []string{oc.use}
	for i, name := range oc.positional {
		if i >= len(oc.positional)-oc.optional {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

func (oc opCommand) arity() cobra.PositionalArgs {
	required := len(oc.positional) - oc.optional
	last := oc.positional[len(oc.positional)-1]
	if strings.HasSuffix(last, "...") {
		return cobra.MinimumNArgs(required)
	}
	return cobra.RangeArgs(required, len(oc.positional))
}

func (oc opCommand) command() *cobra.Command {
	var extra []string
	short := oc.operation
	if op, err := admin.Lookup(oc.operation); err == nil {
		short = op.Usage
	}

	c := &cobra.Command{
		Use:   oc.usage(),
		Short: short,
		Args:  oc.arity(),
		RunE: func(cmd *cobra.Command, words []string) error {
			args, err := parseArgs(extra)
			if err != nil {
				return err
			}
			args.Merge(oc.bindPositional(words))
			resp, err := mgr.Client.Do(ctx, oc.operation, args)
			return report(cmd.OutOrStdout(), resp, err)
		},
	}
	c.Flags().StringArrayVar(&extra, "arg", nil, "optional argument as name=value, repeatable")
	return c
}

func init() {
	for _, group := range opGroups {
		parent := &cobra.Command{Use: group.use, Short: group.short}
		for _, oc := range group.ops {
			parent.AddCommand(oc.command())
		}
		rootCmd.AddCommand(parent)
	}
}
