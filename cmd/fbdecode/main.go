package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/bodgit/fbdecode"
	"github.com/urfave/cli/v2"
)

const defaultDB = "fbdecode.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConverter(c *cli.Context) (*fbdecode.Converter, func() error, error) {
	format, err := fbdecode.ParseOutputFormat(c.String("format"))
	if err != nil {
		return nil, nil, err
	}

	if c.Bool("no-catalog") {
		return fbdecode.New(nil, newLogger(c), format), func() error { return nil }, nil
	}

	catalog, err := fbdecode.NewCatalog(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return fbdecode.New(catalog, newLogger(c), format), catalog.Close, nil
}

func newApp() (*cli.App, error) {
	app := cli.NewApp()

	app.Name = "fbdecode"
	app.Usage = "Framebuffer dump conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"FBDECODE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:  "no-catalog",
			Usage: "do not record conversions in the catalog",
		},
		&cli.StringFlag{
			Name:    "format",
			EnvVars: []string{"FBDECODE_FORMAT"},
			Value:   fbdecode.PNG.String(),
			Usage:   "output image format: png, jpeg, bmp or gif",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "decode",
			Usage:       "Convert a single dump to an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to FILE with the format extension",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					format, _ := fbdecode.ParseOutputFormat(c.String("format"))
					out = fbdecode.OutputName(in, format)
				}

				if err := conv.ConvertFile(in, out); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and convert every dump found",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output directory, defaults to DIRECTORY",
				},
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"FBDECODE_WORKERS"},
					Value:   fbdecode.DefaultWorkers,
					Usage:   "number of concurrent conversions",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					out = in
				}

				if err := conv.Scan(in, out, c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List catalogued dumps",
			Description: "",
			Action: func(c *cli.Context) error {
				catalog, err := fbdecode.NewCatalog(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer catalog.Close()

				entries, err := catalog.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\n", e.ID, e.Name, e.Format, e.Width, e.Height, e.SHA1)
				}

				return w.Flush()
			},
		},
	}

	return app, nil
}

func main() {
	app, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
