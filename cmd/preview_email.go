package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"advisory-console/internal/models"
	"advisory-console/pkg/email"
)

var (
	previewTemplate string
	previewSubject  string
)

var previewEmailCmd = &cobra.Command{
	Use:   "preview-email [advisory.json]",
	Short: "Print the notification email synthesized for an advisory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read advisory: %w", err)
		}
		var a models.Advisory
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("failed to parse advisory: %w", err)
		}
		return writePreview(cmd.OutOrStdout(), a, previewTemplate, previewSubject)
	},
}

func init() {
	previewEmailCmd.Flags().StringVarP(&previewTemplate, "template", "t", string(email.Standard), "email template (standard, urgent, brief)")
	previewEmailCmd.Flags().StringVarP(&previewSubject, "subject", "s", "", "custom subject line")
}

func writePreview(w io.Writer, a models.Advisory, template, subject string) error {
	tmpl := email.ParseTemplate(template)
	c := email.GenerateContentWithSubject(a, tmpl, subject)
	_, err := fmt.Fprintf(w, "Subject: %s\nPriority: %s\n\n%s", c.Subject, email.Priority(tmpl), c.Body)
	return err
}
