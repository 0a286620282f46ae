// Command container-runtime is a single-binary minimal container
// runtime: given a rootfs and a command, it creates an isolated
// execution context (namespaces, an optional cgroup, a pivoted root)
// and runs the command as pid 1 inside it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DeveloperWK/container-runtime/internal/config"
	"github.com/DeveloperWK/container-runtime/internal/runtime/container"
	"github.com/DeveloperWK/container-runtime/internal/runtime/namespace"
)

var (
	configFile = flag.String("config", "", "Path to an optional YAML run config")
	rootfs     = flag.String("rootfs", "", "Path to the container root filesystem (required)")
	hostname   = flag.String("hostname", "", "Hostname inside the container")
	memoryMB   = flag.Uint64("memory-mb", 0, "Memory limit in megabytes (0 = unlimited)")
	cpuPercent = flag.Uint64("cpu-percent", 0, "CPU quota as a percentage of one core (0 = unlimited)")
	pidsLimit  = flag.Int64("pids-limit", 0, "Max processes in the container (0 = unlimited)")
	logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func getLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func main() {
	// The re-exec'd in-namespace leader dispatches before any flag
	// parsing: its argv does not follow the CLI surface's shape.
	if len(os.Args) > 1 && os.Args[1] == namespace.InitArg {
		os.Exit(runInit(os.Args[2:]))
	}

	flag.Parse()

	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(getLogLevel(*logLevel))
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := &container.ContainerConfig{
		RootfsPath: *rootfs,
		Hostname:   *hostname,
		Args:       flag.Args(),
	}
	if len(cfg.Args) > 0 {
		cfg.Command, cfg.Args = cfg.Args[0], cfg.Args[1:]
	}
	if *memoryMB > 0 {
		cfg.MemoryLimitMB = memoryMB
	}
	if *cpuPercent > 0 {
		cfg.CPUPercent = cpuPercent
	}
	if *pidsLimit > 0 {
		cfg.PidsLimit = pidsLimit
	}

	if *configFile != "" {
		file, err := config.LoadFile(*configFile)
		if err != nil {
			logger.Error("load config file", zap.Error(err))
			os.Exit(1)
		}
		file.Merge(cfg)
	}

	selfExe, err := os.Executable()
	if err != nil {
		logger.Error("resolve own executable path", zap.Error(err))
		os.Exit(1)
	}

	code, err := container.Boot(logger, cfg, selfExe)
	if err != nil {
		logger.Error("boot failed", zap.Error(err))
		os.Exit(1)
	}
	os.Exit(code)
}

// runInit dispatches the in-namespace continuation: args are
// [rootfs, hostname, command, arg...], matching the argv container.Boot
// builds for the re-exec.
func runInit(args []string) int {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if len(args) < 3 {
		logger.Error("init continuation missing required arguments")
		return 1
	}
	rootfsPath, hostnameArg, command := args[0], args[1], args[2]
	return container.RunInit(logger, rootfsPath, hostnameArg, command, args[3:])
}
