package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/models"
)

func TestWritePreview_Urgent(t *testing.T) {
	var buf bytes.Buffer
	a := models.Advisory{UpdateType: "Security Patch", ServiceOrOS: "Ubuntu", Description: "Kernel fix"}

	require.NoError(t, writePreview(&buf, a, "urgent", ""))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Subject: 🚨 URGENT: Security Patch - Ubuntu - Immediate Action Required\nPriority: high\n\n"))
	assert.Contains(t, out, "URGENT ACTION REQUIRED")
}

func TestWritePreview_CustomSubject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePreview(&buf, models.Advisory{ServiceOrOS: "Nginx", Description: "x"}, "brief", "Heads up"))
	assert.True(t, strings.HasPrefix(buf.String(), "Subject: Heads up\nPriority: normal\n\nQuick update for Nginx:"))
}

func TestRenderClients(t *testing.T) {
	var buf bytes.Buffer
	renderClients(&buf, []models.Client{{ID: 1, Name: "Acme"}, {ID: 12, Name: "Globex"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[2], "Globex")
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["preview-email"])
	assert.True(t, names["clients"])
}
