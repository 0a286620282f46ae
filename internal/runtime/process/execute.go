package process

import "go.uber.org/zap"

// Execute resolves command, builds its argv/envp, prepares a pty (or
// falls back to direct execution if one is not available), runs it to
// completion, and returns its mapped exit code.
func Execute(logger *zap.Logger, command string, args []string) (int, error) {
	resolved, err := ResolvePath(command)
	if err != nil {
		return 0, err
	}

	argv, err := BuildArgv(resolved, args)
	if err != nil {
		return 0, err
	}

	EnsureDevPts(logger)

	if probePty() {
		return RunPTY(logger, argv, DefaultEnv)
	}

	logger.Warn("PTY not available, falling back to direct execution")
	return RunDirect(argv, DefaultEnv)
}
