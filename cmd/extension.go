package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment variables handed to extension processes, mirroring the global
// flags.
const (
	EnvConfig  = "PFT_CONFIG"
	EnvStorage = "PFT_STORAGE"
	EnvData    = "PFT_DATA"
	EnvVerbose = "PFT_VERBOSE"
)

// RunExtension attempts to find and execute an external pft-<subcommand>
// binary. It returns (true, exitCode) if an extension ran, and (false, 0)
// when none was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "pft-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfig+"="+*configPath)
	cmd.Env = append(cmd.Env, EnvStorage+"="+*storageFlag)
	cmd.Env = append(cmd.Env, EnvData+"="+*dataFlag)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
