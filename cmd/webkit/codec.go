package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/webkit/pkg/base64url"
)

func encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [data]",
		Short: "Encode data as unpadded URL-safe base64",
		Long: `Encode the argument, or standard input when no argument is given,
as unpadded URL-safe base64.

Examples:
  webkit encode hello
  webkit encode < key.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputBytes(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64url.Encode(data))
			return nil
		},
	}
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [text]",
		Short: "Decode unpadded URL-safe base64",
		Long: `Decode the argument, or standard input when no argument is given,
and write the raw bytes to standard output. Surrounding whitespace is ignored.

Examples:
  webkit decode aGVsbG8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputBytes(cmd, args)
			if err != nil {
				return err
			}
			out, err := base64url.Decode(strings.TrimSpace(string(data)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func inputBytes(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	return io.ReadAll(cmd.InOrStdin())
}
