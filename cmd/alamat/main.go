// alamat CLI parser alamat Indonesia
//
// Usage:
//
//	alamat parse "Jl. Sudirman No. 5 RT 3 RW 7, Menteng, Jakarta Pusat" [--json] [--save]
//	alamat export "<alamat>" [-o alamat.csv]
//	alamat history
//	alamat seed [--province 31] [--concurrency 8]
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "alamat",
		Usage:   "Parser alamat Indonesia: provinsi, kota/kabupaten, kecamatan, kelurahan, kode pos, RT/RW",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Direktori berisi app.yaml",
				EnvVars: []string{"ALAMAT_CONFIG_DIR"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Matikan warna output",
			},
		},

		Commands: []*cli.Command{
			parseCommand(),
			exportCommand(),
			historyCommand(),
			seedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
