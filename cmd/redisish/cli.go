package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
)

var addrFlag = &cli.StringFlag{
	Name:    "addr",
	Aliases: []string{"a"},
	Usage:   "address of the server, defaults to LISTEN_ADDR",
	EnvVars: []string{"REDISISH_ADDR"},
}

func initializeCLI() *cli.App {
	return &cli.App{
		Name:      "redisish",
		HelpName:  filepath.Base(os.Args[0]),
		Usage:     "publish a message, retrieve the last one",
		UsageText: "redisish command [command options] [arguments...]",
		Compiled:  time.Now(),
		Before: func(c *cli.Context) error {
			err := buildConfig()
			if err != nil {
				return err
			}
			return buildLogger()
		},
		Commands: []*cli.Command{
			{
				Name:      "serve",
				Usage:     "Accept PUBLISH and RETRIEVE commands over TCP",
				UsageText: "serve",
				Action:    serveCommand,
			},
			{
				Name:      "publish",
				Aliases:   []string{"pub"},
				Usage:     "Publish a message",
				UsageText: "publish <payload>",
				Flags:     []cli.Flag{addrFlag},
				Action:    publishCommand,
			},
			{
				Name:      "retrieve",
				Aliases:   []string{"get"},
				Usage:     "Print the last published message",
				UsageText: "retrieve",
				Flags:     []cli.Flag{addrFlag},
				Action:    retrieveCommand,
			},
			{
				Name:      "history",
				Usage:     "List stored messages, newest first. Requires the mongo or mysql store",
				UsageText: "history [--limit n] [--client addr] [--contains text]",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "limit",
						Usage: "maximum number of messages to list",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "client",
						Usage: "only list messages published from this address",
					},
					&cli.StringFlag{
						Name:  "contains",
						Usage: "only list messages whose payload contains this text",
					},
				},
				Action: historyCommand,
			},
			{
				Name:      "shell",
				Usage:     "Interactive session against a running server",
				UsageText: "shell",
				Flags:     []cli.Flag{addrFlag},
				Action:    shellCommand,
			},
		},
	}
}
