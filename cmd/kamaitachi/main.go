// Command kamaitachi is a small CLI host around pkg/kamaitachi: it scans a
// directory for an HTML entry point and either renders the result to a PDF
// or prints a summary of the display list. Stylesheets are the ones the
// document embeds or links; other .css files in the directory are not read.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/keiya01/kamaitachi/internal/displaylist"
	"github.com/keiya01/kamaitachi/pkg/kamaitachi"
)

func main() {
	app := &cli.Command{
		Name:  "kamaitachi",
		Usage: "visual formatting core for a toy HTML/CSS rendering engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "kamaitachi.toml", Usage: "project config `FILE`"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose pipeline logging"},
		},
		Commands: []*cli.Command{
			renderCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "kamaitachi: %v\n", err)
		os.Exit(1)
	}
}

// findEntryHTML locates the document to convert: dirOrFile directly if it
// names a file, otherwise the first *.html file found in the directory.
func findEntryHTML(dirOrFile string) (string, error) {
	info, err := os.Stat(dirOrFile)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return dirOrFile, nil
	}

	entries, err := os.ReadDir(dirOrFile)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".html" {
			return filepath.Join(dirOrFile, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no .html file found in %s", dirOrFile)
}

func buildConverter(cmd *cli.Command, inputDir string) (*kamaitachi.Converter, error) {
	cfg, err := loadProjectConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	logger := zap.NewNop()
	if cmd.Bool("debug") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	opts := []kamaitachi.Option{
		kamaitachi.WithLogger(logger),
		kamaitachi.WithDebug(cmd.Bool("debug")),
		kamaitachi.WithResourceSearchPath(inputDir),
	}
	if cfg.PageWidth > 0 && cfg.PageHeight > 0 {
		opts = append(opts, kamaitachi.WithPageSize(cfg.PageWidth, cfg.PageHeight))
	}
	for _, dir := range cfg.FontDirs {
		opts = append(opts, kamaitachi.WithFontDir(dir))
	}
	if cfg.RenderBackgrounds != nil {
		opts = append(opts, kamaitachi.WithRenderBackgrounds(*cfg.RenderBackgrounds))
	}
	if cfg.RenderBorders != nil {
		opts = append(opts, kamaitachi.WithRenderBorders(*cfg.RenderBorders))
	}

	return kamaitachi.New(opts...), nil
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render an HTML document (and its stylesheets) to a PDF",
		ArgsUsage: "DIR_OR_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "out.pdf", Usage: "output PDF `PATH`"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("render requires a DIR_OR_FILE argument", 1)
			}
			target := cmd.Args().Get(0)

			entry, err := findEntryHTML(target)
			if err != nil {
				return err
			}

			converter, err := buildConverter(cmd, filepath.Dir(entry))
			if err != nil {
				return err
			}

			output := cmd.String("output")
			if err := converter.ConvertFile(entry, output); err != nil {
				return fmt.Errorf("converting %s: %w", entry, err)
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print a summary of the display list without rendering a PDF",
		ArgsUsage: "DIR_OR_FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("inspect requires a DIR_OR_FILE argument", 1)
			}
			target := cmd.Args().Get(0)

			entry, err := findEntryHTML(target)
			if err != nil {
				return err
			}

			converter, err := buildConverter(cmd, filepath.Dir(entry))
			if err != nil {
				return err
			}

			cmds, err := converter.Convert(entry)
			if err != nil {
				return fmt.Errorf("converting %s: %w", entry, err)
			}

			var solids, texts int
			for _, c := range cmds {
				switch c.Kind {
				case displaylist.SolidColor:
					solids++
				case displaylist.Text:
					texts++
				}
			}
			fmt.Printf("%s: %d commands (%d solid-colour, %d text)\n", entry, len(cmds), solids, texts)
			return nil
		},
	}
}
