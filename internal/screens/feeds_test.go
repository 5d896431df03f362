package screens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/models"
)

func TestFeedManager_AddRequest(t *testing.T) {
	_, err := FeedManager{}.AddRequest("http://a")
	assert.True(t, IsValidation(err))

	f := FeedManager{}.SelectScope(5)
	_, err = f.AddRequest("  ")
	assert.True(t, IsValidation(err))

	// no URL format validation
	req, err := f.AddRequest("not a url")
	require.NoError(t, err)
	assert.Equal(t, models.FeedRequest{TechStackID: 5, URL: "not a url"}, req)
}

func TestFeedManager_DeleteFlow(t *testing.T) {
	f := FeedManager{}.SelectScope(5)
	f = f.FeedsLoaded(5, []models.RssFeed{{URL: "http://a"}, {URL: "http://b"}, {URL: "http://c"}})

	_, err := f.ToggleSelection("http://a")
	assert.True(t, IsValidation(err))

	f = f.ToggleDeleteMode()
	f, _ = f.ToggleSelection("http://b")
	f, _ = f.ToggleSelection("http://a")
	f, _ = f.ToggleSelection("http://c")
	f, _ = f.ToggleSelection("http://c")

	req, err := f.DeleteRequest()
	require.NoError(t, err)
	assert.Equal(t, 5, req.TechStackID)
	assert.ElementsMatch(t, []string{"http://a", "http://b"}, req.URLs)

	f = f.Deleted("2 RSS feed(s) deleted successfully.")
	assert.False(t, f.DeleteMode)
	assert.Empty(t, f.Selected)
}

func TestFeedManager_EmptySelection(t *testing.T) {
	f := FeedManager{}.SelectScope(5).ToggleDeleteMode()
	_, err := f.DeleteRequest()
	require.Error(t, err)
	assert.Equal(t, "No feeds selected or no category specified.", err.Error())
}

func TestFeedManager_LeavingDeleteModeClearsSelection(t *testing.T) {
	f := FeedManager{}.SelectScope(5).ToggleDeleteMode()
	f, _ = f.ToggleSelection("http://a")
	f = f.ToggleDeleteMode()
	assert.Empty(t, f.Selected)
}

func TestFeedManager_StaleListing(t *testing.T) {
	f := FeedManager{}.SelectScope(5).SelectScope(6)
	f = f.FeedsLoaded(5, []models.RssFeed{{URL: "http://a"}})
	assert.Empty(t, f.Feeds)
}
