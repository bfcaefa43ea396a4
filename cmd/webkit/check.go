package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/webkit/internal/errors"
	"github.com/vango-dev/webkit/pkg/params"
)

func checkCmd() *cobra.Command {
	var (
		required []string
		subset   bool
		strict   bool
		report   bool
	)

	cmd := &cobra.Command{
		Use:   "check key[=value]...",
		Short: "Check a parameter set against required keys",
		Long: `Check that the given parameters carry the required keys.

By default every required key must be present and a failed check exits
non-zero. Extra keys are ignored unless --strict is given. With --report the
result is printed and the command always succeeds.

Examples:
  webkit check --require=id,token id=1 token=abc
  webkit check --require=id --strict id=1 page=2
  webkit check --require=id --report page=2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(required) == 0 {
				return errors.New("E160").WithDetail("--require is required")
			}

			request := make(map[string]string, len(args))
			for _, arg := range args {
				key, value, _ := strings.Cut(arg, "=")
				request[key] = value
			}

			policy := params.PolicyFail
			if report {
				policy = params.PolicyReport
			}
			ok, err := params.Check(required, request, params.Exact(!subset), params.RejectUnknown(strict), params.OnFailure(policy))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&required, "require", "r", nil, "Required keys (comma separated)")
	cmd.Flags().BoolVar(&subset, "subset", false, "Allow keys beyond the required ones")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject keys that are not required")
	cmd.Flags().BoolVar(&report, "report", false, "Print false instead of failing")

	return cmd
}
