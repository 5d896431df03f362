package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/models"
)

func TestBullets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"multi line drops blanks", "a\nb\n\nc", []string{"a", "b", "c"}},
		{"single line", "single line", []string{"single line"}},
		{"absent", "", []string{Placeholder}},
		{"whitespace only", "   ", []string{Placeholder}},
		{"only newlines", "\n \n", []string{Placeholder}},
		{"lines trimmed", "  patch kernel \n\treboot\t", []string{"patch kernel", "reboot"}},
		{"single line trimmed", "  one item  ", []string{"one item"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bullets(tt.in))
		})
	}
}

func TestBulletsN_Limit(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, BulletsN("1\n2\n3", 2))
	assert.Equal(t, []string{"1", "2", "3"}, BulletsN("1\n2\n3", 0))
}

func TestCardTitle(t *testing.T) {
	assert.Equal(t, "Feed Advisory", CardTitle(models.Advisory{UpdateType: "Advisory"}))
	assert.Equal(t, "Consolidated Draft", CardTitle(models.Advisory{}))
	assert.Equal(t, "Security Patch", CardTitle(models.Advisory{UpdateType: "Security Patch"}))
}

func TestCards(t *testing.T) {
	cards := Cards([]models.Advisory{
		{ID: 1, UpdateType: "Advisory", Description: "<p>Patch <img src=x>now</p>", Status: models.StatusDraft},
		{ID: 2, UpdateType: "Informational", Status: models.StatusSent},
	})

	require.Len(t, cards, 2)
	assert.Equal(t, "Patch now", cards[0].Description)
	assert.True(t, cards[0].Editable)
	assert.False(t, cards[1].Editable)
}

func TestFormat(t *testing.T) {
	a := models.Advisory{
		UpdateType:        "Vulnerability Alert",
		ServiceOrOS:       "Ubuntu",
		Description:       "OpenSSL flaw",
		TechnicalAnalysis: "1\n2\n3\n4\n5\n6\n7",
		Recommendations:   "Upgrade openssl",
		Timestamp:         "2024-05-01T10:00:00Z",
	}

	f := Format(a)
	assert.Equal(t, "Update: Vulnerability Alert for Ubuntu", f.Header)
	assert.Equal(t, "Malware", f.Category)
	assert.Equal(t, "May 1, 2024", f.Date)
	require.Len(t, f.Sections, 6)
	assert.Equal(t, "Technical Analysis", f.Sections[3].Title)
	assert.Len(t, f.Sections[3].Items, TechnicalAnalysisLimit)
	assert.Equal(t, []string{Placeholder}, f.Sections[0].Items)

	text, err := f.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "Update: Vulnerability Alert for Ubuntu\n======")
	assert.Contains(t, text, "Summary\nOpenSSL flaw")
	assert.Contains(t, text, "Recommendations\n  - Upgrade openssl")
	assert.NotContains(t, text, "  - 6")
}

func TestFormat_Fallbacks(t *testing.T) {
	f := Format(models.Advisory{UpdateType: "Security Patch", Timestamp: "not a date"})
	assert.Equal(t, "General", f.Category)
	assert.Equal(t, "not a date", f.Date)
	assert.Equal(t, NoSummary, f.Summary)
	assert.Equal(t, NoSummary, Format(models.Advisory{Description: "  \n "}).Summary)

	text, err := f.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "Summary\nNo summary provided.")
}
