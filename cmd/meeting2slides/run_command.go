package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting2slides/internal/processor"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		systemPrompt string
		orientation  string
		style        string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "run <transcript>",
		Short: "Build a deck from one transcript file and write the PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			source := args[0]
			text, err := a.reader.Read(cmd.Context(), source)
			if err != nil {
				return err
			}

			if strings.TrimSpace(systemPrompt) == "" {
				saved, err := a.proc.LoadSystemPrompt(cmd.Context())
				if err != nil {
					return err
				}
				systemPrompt = saved.Prompt
			}

			result, err := a.proc.Run(cmd.Context(), processor.RunRequest{CreateRequest: processor.CreateRequest{
				SystemPrompt:       systemPrompt,
				ContentOrientation: orientation,
				VisualStyle:        style,
				Transcript:         text,
			}})
			if err != nil {
				return err
			}

			objectPath, ok := a.bucket.ObjectPath(result.PDFURL)
			if !ok {
				return fmt.Errorf("deck url %s is not in the bucket", result.PDFURL)
			}
			data, err := a.bucket.Download(cmd.Context(), objectPath)
			if err != nil {
				return fmt.Errorf("download deck: %w", err)
			}

			if outPath == "" {
				name := filepath.Base(source)
				outPath = filepath.Join(a.cfg.Paths.Output, strings.TrimSuffix(name, filepath.Ext(name))+".pdf")
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("write deck: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%d slides, presentation %s\n%s\n",
				result.Presentation.Title, result.SlideCount, result.Presentation.ID, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&systemPrompt, "system-prompt", "", "System prompt (defaults to the configured one)")
	cmd.Flags().StringVar(&orientation, "orientation", "", "Content orientation")
	cmd.Flags().StringVar(&style, "style", "", "Visual style")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path (defaults to the output folder)")
	return cmd
}
