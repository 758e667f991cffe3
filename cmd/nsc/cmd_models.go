package main

import (
	"fmt"
	"io"

	"github.com/neuroscanhq/neuroscan/internal/style"
	"github.com/spf13/cobra"
)

func newModelsCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect and switch the service's classification model",
	}
	cmd.AddCommand(
		newModelsCurrentCmd(stdout),
		newModelsListCmd(stdout),
		newModelsSelectCmd(stdout, stderr),
	)
	return cmd
}

func newModelsCurrentCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the model the service is serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := resolveClient(cmd).CurrentModel(cmd.Context())
			if err != nil {
				return hintWrap(err)
			}
			fmt.Fprintln(stdout, name)
			return nil
		},
	}
}

func newModelsListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the models available for selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := resolveClient(cmd)
			ctx := cmd.Context()
			names, err := client.Models(ctx)
			if err != nil {
				return hintWrap(err)
			}
			current, err := client.CurrentModel(ctx)
			if err != nil {
				current = ""
			}
			for _, name := range names {
				if name == current {
					fmt.Fprintf(stdout, "%s %s\n", style.Success.Render("*"), name)
				} else {
					fmt.Fprintf(stdout, "  %s\n", name)
				}
			}
			return nil
		},
	}
}

func newModelsSelectCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "select <name>",
		Short: "Switch the service to a different model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp := style.StartSpinner(stderr, "Switching model...")
			name, err := resolveClient(cmd).SelectModel(cmd.Context(), args[0])
			sp.Stop()
			if err != nil {
				return hintWrap(err)
			}
			fmt.Fprintf(stdout, "%s Now serving %s\n", style.Success.Render(style.IconPass), name)
			return nil
		},
	}
}
