//go:build !unix

package deps

import "os/exec"

func configureProcessGroup(*exec.Cmd) {}
