// Package mcmgr is the composition root: it loads configuration, resolves the
// mc and minio binaries once and wires the executor and operation client.
package mcmgr

import (
	"context"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/binpath"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/executor"
	"github.com/serverlessresearch/mcadmin/pkg/shell"
)

// Binaries driven by the operations. mc is required, minio only for Server.
const (
	Mc    = "mc"
	Minio = "minio"
)

type McManager struct {
	Client   *admin.Client
	Executor *executor.Executor
	Logger   logrus.FieldLogger
	Cfg      *viper.Viper
	// Resolved absolute paths keyed by program name.
	Binaries map[string]string
}

// NewManager builds a manager from userCfg. Recognized options:
//
//	"config-file" string             explicit configuration file
//	"logger"      logrus.FieldLogger replaces the default logrus logger
//	"overrides"   map[string]interface{} configuration values set on top of the file
//
// A missing mc binary is a construction error.
func NewManager(userCfg map[string]interface{}) (*McManager, error) {
	var err error
	mgr := &McManager{}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(logrus.FieldLogger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must satisfy logrus.FieldLogger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if overridesRaw, ok := userCfg["overrides"]; ok {
		overrides, ok := overridesRaw.(map[string]interface{})
		if !ok {
			return nil, errors.New("option 'overrides' must be of type map[string]interface{}")
		}
		for k, v := range overrides {
			mgr.Cfg.Set(k, v)
		}
	}

	if err = mgr.resolveBinaries(); err != nil {
		return nil, err
	}

	if err = mgr.initExecutor(); err != nil {
		return nil, err
	}
	mgr.Client = admin.NewClient(mgr.Executor)

	return mgr, nil
}

func (self *McManager) initConfig(cfgPath *string) error {
	// Private viper context so as not to conflict with the importer's usage.
	self.Cfg = viper.New()

	self.Cfg.SetDefault("binaries.mc", Mc)
	self.Cfg.SetDefault("binaries.minio", Minio)
	self.Cfg.BindEnv("binaries.mc", "MC_BINARY")
	self.Cfg.BindEnv("binaries.minio", "MINIO_BINARY")
	self.Cfg.SetDefault("binaries.verify", true)

	self.Cfg.SetDefault("exec.mode", "blocking")
	self.Cfg.BindEnv("exec.mode", "MCADMIN_EXEC_MODE")
	self.Cfg.SetDefault("exec.timeout", "30s")
	self.Cfg.SetDefault("exec.concurrency", 4)

	self.Cfg.SetDefault("flags.omit-false", false)

	self.Cfg.SetDefault("rpc.address", "localhost:9100")

	if cfgPath != nil {
		self.Cfg.SetConfigFile(*cfgPath)
		if err := self.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
		return nil
	}

	// Default search path is ./configs/mcadmin.* then ~/.mcadmin/mcadmin.*
	self.Cfg.SetConfigName("mcadmin")
	self.Cfg.AddConfigPath("./configs")
	if home, err := homedir.Dir(); err == nil {
		self.Cfg.AddConfigPath(filepath.Join(home, ".mcadmin"))
	}
	if err := self.Cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "Failed to load config")
		}
		self.Logger.Debug("no config file found, using defaults")
	}
	return nil
}

func (self *McManager) resolveBinaries() error {
	self.Binaries = map[string]string{}

	mc, err := binpath.Resolve(self.Cfg.GetString("binaries.mc"))
	if err != nil {
		return errors.Wrap(err, "Unable to locate the mc binary")
	}
	self.Binaries[Mc] = mc
	if self.Cfg.GetBool("binaries.verify") {
		version, err := self.version(mc)
		if err != nil {
			return errors.Wrapf(err, "mc at %s does not run", mc)
		}
		self.Logger.Infof("using mc from: %s (%s)", mc, version)
	} else {
		self.Logger.Infof("using mc from: %s", mc)
	}

	minio, err := binpath.Resolve(self.Cfg.GetString("binaries.minio"))
	if err != nil {
		self.Logger.Warnf("minio binary unavailable, server operations will fail: %v", err)
		minio = ""
	} else {
		self.Logger.Infof("using minio from: %s", minio)
	}
	self.Binaries[Minio] = minio
	return nil
}

// version runs "<binary> --version" under the exec timeout and returns the
// first line it prints.
func (self *McManager) version(binary string) (string, error) {
	ctx := context.Background()
	if timeout := self.Cfg.GetDuration("exec.timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	out, err := shell.RunSimple(ctx, binary, "--version")
	if err != nil {
		return "", err
	}
	return strings.SplitN(strings.TrimSpace(out), "\n", 2)[0], nil
}

func (self *McManager) initExecutor() error {
	mode := strings.ToLower(self.Cfg.GetString("exec.mode"))
	invoker, err := executor.InvokerByName(mode)
	if err != nil {
		return errors.Wrap(err, "Failed to initialize executor")
	}

	e := executor.New(invoker, self.Logger.WithField("module", "executor"))
	e.Timeout = self.Cfg.GetDuration("exec.timeout")
	e.Codec = command.FlagCodec{OmitFalse: self.Cfg.GetBool("flags.omit-false")}
	for program, path := range self.Binaries {
		e.Binaries[program] = path
	}
	self.Executor = e
	return nil
}

// Concurrency is the configured batch width.
func (self *McManager) Concurrency() int {
	return self.Cfg.GetInt("exec.concurrency")
}

// Destroy releases manager resources.
func (self *McManager) Destroy() {
	self.Logger.Debug("manager destroyed")
}
