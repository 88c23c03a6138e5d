package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/smol/cmds"
	"github.com/reusee/smol/interps"
	"github.com/reusee/smol/logs"
	"github.com/reusee/smol/modes"
	"github.com/reusee/smol/systools"
)

type Module struct {
	dscope.Module
	Interps interps.Module
}

var (
	ce = e5.Check.With(e5.WrapStacktrace)

	sysToolsFlag = cmds.Switch("-sys-tools")
	jsonFlag     = cmds.Switch("-json")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		newInterpreter interps.NewInterpreter,
	) {

		interpreter := newInterpreter()
		if *sysToolsFlag {
			for _, desc := range systools.All() {
				ce(interpreter.RegisterTool(desc))
			}
		}
		session := interps.NewSession()
		logger.Info("session start",
			"session", session.ID(),
		)

		stat, err := os.Stdin.Stat()
		ce(err)
		interactive := stat.Mode()&os.ModeCharDevice != 0

		if !interactive {
			content, err := io.ReadAll(os.Stdin)
			ce(err)
			emit(interpreter.Execute(ctx, string(content), session))
			return
		}

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print(">>> ")
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) != "" {
				emit(interpreter.Execute(ctx, line, session))
			}
			fmt.Print(">>> ")
		}
		fmt.Println()
	})
}

func emit(result interps.Result) {
	if *jsonFlag {
		content, err := json.MarshalIndent(result, "", "  ")
		ce(err)
		os.Stdout.Write(content)
		os.Stdout.WriteString("\n")
		return
	}
	if result.Err != nil {
		fmt.Fprintln(os.Stderr, result.Err.Error())
		return
	}
	if result.Value != nil {
		fmt.Printf("=> %v\n", result.Value)
	}
}
