// Package systools provides ready-made tool descriptors for shell and
// file access. They run with the process's full privileges; registering
// them is the caller's decision.
package systools

import (
	"bytes"
	"errors"
	"os"
	"os/exec"

	"github.com/reusee/smol/interps"
)

func All() []interps.ToolDescriptor {
	return []interps.ToolDescriptor{
		RunShell(),
		ReadFile(),
		WriteFile(),
	}
}

func RunShell() interps.ToolDescriptor {
	return interps.ToolDescriptor{
		Name:        "run_shell",
		Description: "Run a shell command and return its exit code, stdout and stderr.",
		Params: map[string]interps.Param{
			"cmd": {
				Type:        "string",
				Description: "The command line to run.",
				Required:    true,
			},
		},
		Func: func(cmd string) (map[string]any, error) {
			command := exec.Command("sh", "-c", cmd)
			var stdout, stderr bytes.Buffer
			command.Stdout = &stdout
			command.Stderr = &stderr
			returncode := 0
			if err := command.Run(); err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					return nil, err
				}
				returncode = exitErr.ExitCode()
			}
			return map[string]any{
				"returncode": returncode,
				"stdout":     stdout.String(),
				"stderr":     stderr.String(),
			}, nil
		},
	}
}

func ReadFile() interps.ToolDescriptor {
	return interps.ToolDescriptor{
		Name:        "read_file",
		Description: "Read a file and return its content.",
		Params: map[string]interps.Param{
			"path": {
				Type:        "string",
				Description: "The file path to read.",
				Required:    true,
			},
		},
		Func: func(path string) (string, error) {
			content, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(content), nil
		},
	}
}

func WriteFile() interps.ToolDescriptor {
	return interps.ToolDescriptor{
		Name:        "write_file",
		Description: "Write content to a file, replacing what was there.",
		Params: map[string]interps.Param{
			"path": {
				Type:        "string",
				Description: "The file path to write.",
				Required:    true,
			},
			"content": {
				Type:        "string",
				Description: "The content to write.",
				Required:    true,
			},
		},
		Func: func(path string, content string) (string, error) {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return "", err
			}
			return "file written to " + path, nil
		},
	}
}
