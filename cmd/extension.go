package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// RunExtension looks for an executable named pos-<subcommand> in PATH and
// runs it with args. The resolved settings are passed as POS_* environment
// variables.
//
// It returns (true, exitCode) if an extension was found, (false, 0) otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "pos-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debugf("extension %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvLedgerFile+"="+settings.Ledger,
		EnvCurrency+"="+settings.Currency,
		EnvVerbose+"="+strconv.FormatBool(settings.Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
