package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const usage = `raygun is a tool for reporting errors to Raygun

Usage:

raygun <command> --flag1 --flag2 (...)

The commands are:
	send -- Report a single error to Raygun, the same way the logrus hook does.

For more details about a command, run:

raygun <command> --help`

type application struct {
	sendCmd   *flag.FlagSet
	sendFlags *sendFlags
	log       *logrus.Logger
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Printf("%s\n", err.Error())
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf(usage)
	}
	sendCmd := flag.NewFlagSet("send", flag.ContinueOnError)
	sendCmd.SetOutput(out)

	logger := logrus.New()
	logger.SetOutput(out)

	app := application{sendCmd: sendCmd, sendFlags: newSendFlags(sendCmd), log: logger}

	switch args[0] {
	case "send":
		if err := sendCmd.Parse(args[1:]); err != nil {
			return err
		}
		return app.runSend()
	}
	return fmt.Errorf(usage)
}
