// Package main provides a server offering an interactive 3D visualization
// of a five-joint articulated arm, driven from the browser.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"go.viam.com/utils"

	"github.com/armviz/armviz/config"
	"github.com/armviz/armviz/web"
)

var logger = golog.NewDevelopmentLogger("armviz_server")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ConfigFile string            `flag:"config,usage=service config file"`
	Port       utils.NetPortFlag `flag:"port,usage=port to listen on"`
	Theme      string            `flag:"theme,usage=viewer theme (dark or light)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	cfg := config.Default()
	if argsParsed.ConfigFile != "" {
		var err error
		cfg, err = config.Read(argsParsed.ConfigFile)
		if err != nil {
			return err
		}
	}
	if argsParsed.Port != 0 {
		cfg.Port = int(argsParsed.Port)
	}
	if argsParsed.Theme != "" {
		cfg.Theme = argsParsed.Theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := web.Options{
		Port:              cfg.Port,
		Theme:             cfg.Theme,
		BroadcastInterval: cfg.BroadcastInterval(),
	}
	server, err := web.NewServer(opts, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
