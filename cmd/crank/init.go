package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/MonacoProtocol/crank/config"
	"github.com/MonacoProtocol/crank/logging"
)

type InitCmd struct {
	config.RootPathFlag

	Force bool `short:"f" long:"force" description:"Erase existing configuration at the specified path"`
}

var initCmd InitCmd

func (cmd *InitCmd) Execute(_ []string) error {
	log := logging.NewLoggerFromEnv("dev")
	defer log.AtExit()

	cfgPath := config.FilePath(cmd.RootPath)
	if _, err := os.Stat(cfgPath); err == nil && !cmd.Force {
		return fmt.Errorf("configuration already exists at `%v` please remove it first or re-run using -f", cmd.RootPath)
	}

	if err := config.Write(cmd.RootPath, config.NewDefaultConfig()); err != nil {
		return err
	}

	log.Info("configuration generated successfully",
		logging.String("path", cfgPath))
	return nil
}

func Init(ctx context.Context, parser *flags.Parser) error {
	initCmd = InitCmd{
		RootPathFlag: config.NewRootPathFlag(),
	}
	_, err := parser.AddCommand("init", "Initialize the crank", "Generate the minimal configuration required for the crank to start", &initCmd)
	return err
}
