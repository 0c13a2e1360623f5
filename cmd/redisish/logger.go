package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func buildLogger() error {

	logger = logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Wrap(err, "failed to parse log level")
	}
	logger.SetLevel(level)

	if cfg.Log.File == "" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return nil
	}

	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    500, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	return nil

}
