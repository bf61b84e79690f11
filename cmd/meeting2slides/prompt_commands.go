package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPromptCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage the saved system prompt",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save <text>",
		Short: "Replace the saved system prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			saved, err := a.proc.SaveSystemPrompt(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved system prompt %s\n", saved.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the system prompt used for new presentations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			prompt, err := a.proc.LoadSystemPrompt(cmd.Context())
			if err != nil {
				return err
			}
			if prompt.ID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(default)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Prompt)
			return nil
		},
	})

	return cmd
}
