// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/mcmgr"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

// Commands carrying this annotation run without a manager, so they work on
// hosts where mc is not installed.
const noManager = "no-manager"

var rootCmdConfig struct {
	cfgFile string
	verbose bool
	check   bool
}

var (
	mgr    *mcmgr.McManager
	logger = logrus.New()
	ctx    = context.Background()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcadmin",
	Short: "Administer MinIO deployments through the mc client",
	Long: `Runs mc and minio administrative commands and prints their JSON output
as a single normalized document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootCmdConfig.verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		if _, ok := cmd.Annotations[noManager]; ok {
			return nil
		}

		mgrArgs := map[string]interface{}{"logger": logger}
		if rootCmdConfig.cfgFile != "" {
			mgrArgs["config-file"] = rootCmdConfig.cfgFile
		}

		var err error
		mgr, err = mcmgr.NewManager(mgrArgs)
		if err != nil {
			return errors.Wrap(err, "Failed to initialize mcadmin manager")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if mgr != nil {
			mgr.Destroy()
			mgr = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		cancel()
		os.Exit(1)
	}
}

// parseArgs turns "name=value" pairs into operation arguments. A bare name
// and the values "true" and "false" become booleans. Repeating a name
// collects its values into a list.
func parseArgs(pairs []string) (command.Args, error) {
	result := command.Args{}
	for _, pair := range pairs {
		keyValue := strings.SplitN(pair, "=", 2)
		key := strings.TrimSpace(keyValue[0])
		if key == "" {
			return nil, errors.Errorf("malformed argument %q, expected name=value", pair)
		}

		var value interface{} = true
		if len(keyValue) == 2 {
			switch keyValue[1] {
			case "true":
				value = true
			case "false":
				value = false
			default:
				value = keyValue[1]
			}
		}

		switch prev := result[key].(type) {
		case nil:
			result[key] = value
		case []string:
			result[key] = append(prev, fmt.Sprint(value))
		default:
			result[key] = []string{fmt.Sprint(prev), fmt.Sprint(value)}
		}
	}
	return result, nil
}

// report prints resp as indented JSON. With --check a tool-reported error
// is returned after printing so the process exits non-zero.
func report(w io.Writer, resp *response.Response, err error) error {
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Failed to encode response")
	}
	fmt.Fprintln(w, string(out))

	if rootCmdConfig.check {
		if _, err := admin.Checked(resp, nil); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	logger.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.cfgFile, "config", "", "config file (default is configs/mcadmin.yaml, then ~/.mcadmin/mcadmin.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootCmdConfig.verbose, "verbose", "v", false, "log rendered commands and timings")
	rootCmd.PersistentFlags().BoolVar(&rootCmdConfig.check, "check", false, "exit non-zero when mc reports an error")
}
