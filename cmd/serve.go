// Handles "mcadmin serve" and "mcadmin remote"

package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/serverlessresearch/mcadmin/pkg/rpc"
)

var serveCmdConfig struct {
	address string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the operations over gRPC",
	Long: `Exposes every operation on the mcadmin.Admin gRPC service so that hosts
without mc can use "mcadmin remote". The address defaults to rpc.address
from the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, words []string) error {
		address := serveCmdConfig.address
		if address == "" {
			address = mgr.Cfg.GetString("rpc.address")
		}
		server := rpc.NewServer(mgr.Client, mgr.Logger.WithField("module", "rpc"))
		return rpc.Serve(ctx, address, server, mgr.Logger)
	},
}

var remoteCmdConfig struct {
	address string
	args    []string
	list    bool
}

var remoteCmd = &cobra.Command{
	Use:   "remote [operation]",
	Short: "Run an operation on a host running \"mcadmin serve\"",
	Long: `Runs an operation through the gRPC service, for example

  mcadmin remote --address admin-host:9100 admin-user-list --arg target=local

With --list, prints the operations the remote side supports.`,
	Annotations: map[string]string{noManager: ""},
	Args:        cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, words []string) error {
		client, err := rpc.Dial(ctx, remoteCmdConfig.address)
		if err != nil {
			return err
		}
		defer client.Close()

		if remoteCmdConfig.list || len(words) == 0 {
			ops, err := client.Operations(ctx)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(ops))
			for name := range ops {
				names = append(names, name)
			}
			sort.Strings(names)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%s\n", name, ops[name])
			}
			return w.Flush()
		}

		args, err := parseArgs(remoteCmdConfig.args)
		if err != nil {
			return err
		}
		resp, err := client.Invoke(ctx, words[0], args, false)
		return report(cmd.OutOrStdout(), resp, err)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveCmdConfig.address, "address", "", "listen address (default rpc.address)")

	remoteCmd.Flags().StringVar(&remoteCmdConfig.address, "address", "localhost:9100", "address of the serving host")
	remoteCmd.Flags().StringArrayVar(&remoteCmdConfig.args, "arg", nil, "operation argument as name=value, repeatable")
	remoteCmd.Flags().BoolVar(&remoteCmdConfig.list, "list", false, "list remote operations")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remoteCmd)
}
