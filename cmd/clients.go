package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/config"
	"advisory-console/internal/logging"
	"advisory-console/internal/models"
)

var clientsFilter string

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the back-office client roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		client := backoffice.New(cfg, logging.NewNop())
		clients, err := client.ListClients(cmd.Context())
		if err != nil {
			return err
		}
		renderClients(cmd.OutOrStdout(), models.FilterClients(clients, clientsFilter))
		return nil
	},
}

func init() {
	clientsCmd.Flags().StringVarP(&clientsFilter, "filter", "f", "", "case-insensitive name filter")
}

func renderClients(w io.Writer, clients []models.Client) {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
}
