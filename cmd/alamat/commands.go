package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alamat-parser/app/services"
	"github.com/urfave/cli/v2"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse satu alamat",
		ArgsUsage: "<alamat>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Simpan hasil ke riwayat",
			},
		},
		Action: runParse,
	}
}

func runParse(c *cli.Context) error {
	address, err := addressArg(c)
	if err != nil {
		return err
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	result, err := e.parser.Parse(c.Context, address)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printParsed(os.Stdout, address, result.Address, result.Messages)
	}

	if !c.Bool("save") {
		return nil
	}
	history, err := e.history()
	if err != nil {
		return err
	}
	defer history.Close()

	_, message, err := history.Save(c.Context, address, result.Address)
	if err != nil {
		return err
	}
	printMessage(os.Stderr, message)
	return nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Parse alamat lalu tulis hasilnya ke CSV",
		ArgsUsage: "<alamat>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "File output (default alamat_<timestamp>.csv, - untuk stdout)",
			},
		},
		Action: func(c *cli.Context) error {
			address, err := addressArg(c)
			if err != nil {
				return err
			}
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			result, err := e.parser.Parse(c.Context, address)
			if err != nil {
				return err
			}
			file, err := services.NewExportService().Export(address, result.Address)
			if err != nil {
				return err
			}

			output := c.String("output")
			if output == "-" {
				_, err := os.Stdout.Write(file.Data)
				return err
			}
			if output == "" {
				output = file.Filename
			}
			if err := os.WriteFile(output, file.Data, 0o644); err != nil {
				return fmt.Errorf("gagal menulis %s: %w", output, err)
			}
			printMessage(os.Stderr, "CSV ditulis ke "+output)
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Tampilkan riwayat alamat terbaru",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			history, err := e.history()
			if err != nil {
				return err
			}
			defer history.Close()

			entries := history.List(c.Context)
			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printHistory(os.Stdout, entries)
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Salin katalog wilayah dari API ke index Meilisearch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "province",
				Usage: "Hanya seed satu provinsi (ID)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: services.DefaultSeedConcurrency,
				Usage: "Jumlah fetch paralel",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			index, err := openIndex(e.cfg, e.logger)
			if err != nil {
				return err
			}

			admin := services.NewAdminService(e.catalog, e.source, index, e.logger)
			result, err := admin.SeedIndex(c.Context, services.SeedOptions{
				ProvinceID:  c.String("province"),
				Concurrency: c.Int("concurrency"),
			})
			if err != nil {
				return err
			}
			printSeedResult(os.Stdout, result)
			return nil
		},
	}
}
