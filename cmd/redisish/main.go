package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	cfg    *config
	logger *logrus.Logger
	wg     = new(sync.WaitGroup)
)

func main() {
	err := initializeCLI().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
