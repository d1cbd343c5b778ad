package main

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cidrsum",
		Short: "Collapse IPv4 subnet lists",
		Long: `cidrsum reads IPv4 subnets, including shorthand such as 10/8 or 172.16/16,
and reduces them to the smallest equivalent set of CIDR blocks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewCollapseCommand())

	return cmd
}
