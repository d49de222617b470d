package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/checker"
)

// FilesCommand returns the CLI command for listing discoverable Python files
func FilesCommand() *cli.Command {
	return &cli.Command{
		Name:      "files",
		Usage:     "List the Python files a check would analyze",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Additional glob patterns to ignore",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Args().Present() {
				cfg.Analysis.TargetPath = c.Args().First()
			}

			svc := checker.New(cfg)
			files, err := svc.ListFiles(c.Context, c.StringSlice("ignore"))
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Println(f)
			}
			return nil
		},
	}
}
