package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"expunch/analyzer"
	"expunch/emitter"
)

const usageText = `expunch [options] <source_code_path>

Expand used or declared modules of a Rust source file into their contents,
resolving the library crate of the workspace package.
Rustソースコード中のuse文とモジュール宣言をワークスペースのライブラリクレートに
含まれるソースコードの内容に展開する

   * Run this command in the directory of your workspace
     このコマンドはワークスペースのディレクトリで使用する必要があります

ARGS:
   source_code_path   Path to a Rust source file
                      Rustソースコードへのパス`

const missingSourceText = `Specify the path to a Rust source file in the argument source_code_path
引数 source_code_path にRustソースコードへのパスを指定してください`

func RootCommand() *cli.Command {
	cmd := &cli.Command{
		Name:      "expunch",
		Usage:     "flatten a Rust module graph into a single source file",
		UsageText: usageText,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest-path",
				Usage:   "path to Cargo.toml (default: searched upward from the working directory)",
				Sources: cli.EnvVars("EXPUNCH_MANIFEST_PATH"),
			},
			&cli.StringFlag{
				Name:    "visibility",
				Value:   emitter.DefaultVisibility,
				Usage:   "visibility of generated module wrappers; empty for private",
				Sources: cli.EnvVars("EXPUNCH_VISIBILITY"),
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "print the source files that would be expanded instead of the expansion",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log module resolution to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			return ctx, nil
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch cmd.Args().Len() {
			case 0:
				fmt.Fprintln(cmd.ErrWriter, missingSourceText)
				return nil
			case 1:
			default:
				fmt.Fprintln(cmd.Writer, usageText)
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			opts := options{
				SourcePath:   cmd.Args().First(),
				ManifestPath: cmd.String("manifest-path"),
				Visibility:   cmd.String("visibility"),
				BaseDir:      cwd,
				Logger:       slog.Default(),
			}
			slog.Debug("expand source file.", "path", opts.SourcePath)

			if !cmd.Bool("list") {
				return expandFile(opts, cmd.Writer)
			}
			sources, err := listSources(opts)
			if err != nil {
				return err
			}
			var files []string
			for _, s := range sources {
				files = append(files, analyzer.RelativePath(cwd, s.Path))
			}
			sort.Strings(files)
			for _, file := range files {
				fmt.Fprintln(cmd.Writer, file)
			}
			return nil
		},
	}
	return cmd
}

func main() {
	cmd := RootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Debug("exited", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
