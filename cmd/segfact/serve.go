package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/server"
)

func serveCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the JSON HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", EnvVars: []string{"SEGFACT_ADDR"}, Usage: "listen address"},
		},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			var opts server.Options
			if c.String("doc-path") != "" {
				repo, err := docRepository(c, &p)
				if err != nil {
					return err
				}
				opts.Docs = repo
			}

			if path := c.String("report-path"); path != "" {
				w, err := NewReportWriter(&p, path)
				if err != nil {
					return err
				}
				opts.Reports = w
			}

			return server.ListenAndServe(c.Context, c.String("addr"), server.New(opts))
		},
	}
}
