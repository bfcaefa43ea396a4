package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/webkit/pkg/markup"
)

func tagCmd() *cobra.Command {
	var class, id string

	cmd := &cobra.Command{
		Use:   "tag <tag> <text>",
		Short: "Wrap text in an HTML element",
		Long: `Wrap text in an HTML element. Input is written verbatim.

Examples:
  webkit tag div hi
  webkit tag span hi --class=note --id=first`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), markup.WrapTag(args[0], args[1], markup.Class(class), markup.ID(id)))
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Class attribute")
	cmd.Flags().StringVar(&id, "id", "", "Id attribute")

	return cmd
}

func optionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "option <text> <value> <selected>",
		Short: "Render an option element",
		Long: `Render an option element, marked selected when value equals selected.

Examples:
  webkit option Yes 1 1`,
		Args: cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), markup.OptionTag(args[0], args[1], args[2]))
		},
	}
}
