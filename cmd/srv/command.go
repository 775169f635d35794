package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "CodeXero"
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Start the verification and referral api service.`,
		},
		{
			Action:      server.migrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Create or update all database tables.`,
		},
	}

	s.app = app
}
