// Handles "mcadmin run", "mcadmin batch", "mcadmin ops" and "mcadmin server"

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/command"
)

var runCmdConfig struct {
	args   []string
	dryRun bool
}

var runCmd = &cobra.Command{
	Use:   "run <operation>",
	Short: "Run any operation by name",
	Long: `Run an operation by its registered name, for example

  mcadmin run admin-user-add --arg target=local --arg username=bob --arg password=secret

Use "mcadmin ops" to list the operation names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, words []string) error {
		args, err := parseArgs(runCmdConfig.args)
		if err != nil {
			return err
		}
		if runCmdConfig.dryRun {
			line, err := mgr.Client.Render(words[0], args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		}
		resp, err := mgr.Client.Do(ctx, words[0], args)
		return report(cmd.OutOrStdout(), resp, err)
	},
}

var batchCmdConfig struct {
	file string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of operations concurrently",
	Long: `Reads one request per line, as JSON, from --file or standard input:

  {"operation": "admin-user-add", "args": {"target": "local", "username": "bob", "password": "secret"}}

Requests run with at most exec.concurrency processes at once and the
responses are printed in request order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, words []string) error {
		in := cmd.InOrStdin()
		if batchCmdConfig.file != "" && batchCmdConfig.file != "-" {
			f, err := os.Open(batchCmdConfig.file)
			if err != nil {
				return errors.Wrap(err, "Failed to open batch file")
			}
			defer f.Close()
			in = f
		}

		reqs, err := readRequests(in)
		if err != nil {
			return err
		}
		resps, err := mgr.Client.DoAll(ctx, reqs, mgr.Concurrency())
		if err != nil {
			return err
		}
		for _, resp := range resps {
			if err := report(cmd.OutOrStdout(), resp, nil); err != nil {
				return err
			}
		}
		return nil
	},
}

func readRequests(r io.Reader) ([]admin.Request, error) {
	var reqs []admin.Request
	dec := json.NewDecoder(r)
	for {
		var line struct {
			Operation string                 `json:"operation"`
			Args      map[string]interface{} `json:"args"`
		}
		if err := dec.Decode(&line); err == io.EOF {
			return reqs, nil
		} else if err != nil {
			return nil, errors.Wrapf(err, "Failed to read request %d", len(reqs))
		}

		args := command.Args{}
		for k, v := range line.Args {
			if list, ok := v.([]interface{}); ok {
				items := make([]string, 0, len(list))
				for _, item := range list {
					items = append(items, fmt.Sprint(item))
				}
				v = items
			}
			args[k] = v
		}
		reqs = append(reqs, admin.Request{Operation: line.Operation, Args: args})
	}
}

var opsCmd = &cobra.Command{
	Use:         "ops",
	Short:       "List the available operations",
	Annotations: map[string]string{noManager: ""},
	Args:        cobra.NoArgs,
	Run: func(cmd *cobra.Command, words []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, op := range admin.Operations() {
			fmt.Fprintf(w, "%s\t%s\n", op.Name, op.Usage)
		}
		w.Flush()
	},
}

var serverCmdConfig struct {
	address        string
	consoleAddress string
}

var serverCmd = &cobra.Command{
	Use:   "server <dir>",
	Short: "Run a minio server in the foreground",
	Long: `Runs "minio server" on dir until it exits or mcadmin is interrupted.
The executor timeout does not apply.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, words []string) error {
		args := command.Args{"dir": words[0]}
		if serverCmdConfig.address != "" {
			args["address"] = serverCmdConfig.address
		}
		if serverCmdConfig.consoleAddress != "" {
			args["console_address"] = serverCmdConfig.consoleAddress
		}
		resp, err := mgr.Client.Server(ctx, args)
		return report(cmd.OutOrStdout(), resp, err)
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runCmdConfig.args, "arg", nil, "operation argument as name=value, repeatable")
	runCmd.Flags().BoolVar(&runCmdConfig.dryRun, "dry-run", false, "print the command line instead of running it")

	batchCmd.Flags().StringVarP(&batchCmdConfig.file, "file", "f", "", "request file, - or empty for standard input")

	serverCmd.Flags().StringVar(&serverCmdConfig.address, "address", "", "bind address, e.g. :9000")
	serverCmd.Flags().StringVar(&serverCmdConfig.consoleAddress, "console-address", "", "console bind address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(opsCmd)
	rootCmd.AddCommand(serverCmd)
}
