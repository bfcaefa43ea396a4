package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/webkit/internal/config"
	"github.com/vango-dev/webkit/internal/errors"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage webkit.json",
		Long: `Create, inspect and edit the webkit.json read by "webkit serve".

Examples:
  webkit config init
  webkit config set session.idleTimeout 30m
  webkit config show ./deploy`,
	}

	cmd.AddCommand(configInitCmd(), configSetCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a webkit.json with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dirArg(args), config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E160").
					WithDetail(path + " already exists").
					WithSuggestion("Use --force to overwrite it")
			}

			cfg := config.New()
			if err := cfg.SaveTo(path); err != nil {
				return errors.New("E120").Wrap(err)
			}
			success(cmd, "Created %s", cfg.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing webkit.json")
	return cmd
}

func configSetCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one value in webkit.json",
		Long: `Set one value in an existing webkit.json. The result is validated before
it is written.

Keys: ` + strings.Join(config.Keys(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return errors.New("E120").Wrap(err)
			}
			success(cmd, "Set %s in %s", args[0], cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing webkit.json")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [dir]",
		Short: "Print the effective configuration",
		Long:  `Print webkit.json with defaults and WEBKIT_* environment overrides applied.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dirArg(args))
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.LookupEnv)

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			info(cmd, "%s", cfg.Path())
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func dirArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}
