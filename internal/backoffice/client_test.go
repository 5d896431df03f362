package backoffice_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/backoffice/backofficetest"
	"advisory-console/internal/logging"
	"advisory-console/internal/models"
)

func newClient(t *testing.T) (*backoffice.Client, *backofficetest.Server) {
	t.Helper()
	fake := backofficetest.New(t)
	return backoffice.New(fake.Config(), logging.NewNop()), fake
}

func TestListClients_MapsTuples(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/clients", http.StatusOK, []any{[]any{1, "Acme"}, []any{2, "Globex"}})

	clients, err := client.ListClients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Client{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}}, clients)
}

func TestAPIError_MessagePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   string
	}{
		{"error field", http.StatusBadRequest, gin.H{"error": "Missing advisory details", "message": "ignored"}, "Missing advisory details"},
		{"message field", http.StatusBadRequest, gin.H{"message": "All fields are required."}, "All fields are required."},
		{"status text", http.StatusInternalServerError, []int{}, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newClient(t)
			fake.Reply(http.MethodPost, "/api/advisories/bulk", tt.status, tt.body)

			_, err := client.CreateBulkAdvisory(context.Background(), models.AdvisoryDraft{})
			require.Error(t, err)

			var apiErr *backoffice.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Error())
			assert.True(t, backoffice.IsAPIError(err))
		})
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	client, fake := newClient(t)
	fake.Close()

	_, err := client.ListClients(context.Background())
	require.Error(t, err)
	assert.False(t, backoffice.IsAPIError(err))
}

func TestCreateBulkAdvisory_Body(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodPost, "/api/advisories/bulk", http.StatusCreated, gin.H{"message": "Dispatched to 3 clients"})

	resp, err := client.CreateBulkAdvisory(context.Background(), models.AdvisoryDraft{
		TechStackID: 5, Version: "*", UpdateType: "Security Patch", Description: "Patch now",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dispatched to 3 clients", resp.Message)

	reqs := fake.RequestsTo(http.MethodPost, "/api/advisories/bulk")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"techStackId":5,"version":"*","updateType":"Security Patch","description":"Patch now"}`, string(reqs[0].Body))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestDispatchAdvisory_IdempotencyKey(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodPost, "/api/dispatch-advisory", http.StatusOK, gin.H{"message": "Advisory dispatched to 2 contacts."})

	_, err := client.DispatchAdvisory(context.Background(), models.DispatchRequest{Title: "t", Content: "c", AdvisoryID: 4, Priority: "normal"}, "")
	require.NoError(t, err)
	_, err = client.DispatchAdvisory(context.Background(), models.DispatchRequest{Title: "t", Content: "c", AdvisoryID: 4, Priority: "normal"}, "fixed-key")
	require.NoError(t, err)

	reqs := fake.RequestsTo(http.MethodPost, "/api/dispatch-advisory")
	require.Len(t, reqs, 2)
	assert.NotEmpty(t, reqs[0].Header.Get(backoffice.IdempotencyHeader))
	assert.Equal(t, "fixed-key", reqs[1].Header.Get(backoffice.IdempotencyHeader))
	assert.JSONEq(t, `{"title":"t","content":"c","advisoryId":4,"priority":"normal"}`, string(reqs[0].Body))
}

func TestDeleteAssignment_RoutesByScope(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodDelete, "/api/client-tech/1", http.StatusOK, gin.H{})
	fake.Reply(http.MethodDelete, "/api/client-subcategory/2", http.StatusOK, gin.H{})
	fake.Reply(http.MethodDelete, "/api/client-category/3", http.StatusOK, gin.H{})

	ctx := context.Background()
	require.NoError(t, client.DeleteAssignment(ctx, models.TechStackScope{ID: 1}))
	require.NoError(t, client.DeleteAssignment(ctx, models.SubcategoryScope{ID: 2}))
	require.NoError(t, client.DeleteAssignment(ctx, models.CategoryScope{ID: 3}))

	var paths []string
	for _, r := range fake.Requests() {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/api/client-tech/1", "/api/client-subcategory/2", "/api/client-category/3"}, paths)
}

func TestEscalationMatrix_FailureYieldsEmptyLevels(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/clients/1/escalation-matrix", http.StatusInternalServerError, gin.H{"error": "db down"})

	m, err := client.EscalationMatrix(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, models.EmptyEscalationMatrix(), m)
}

func TestEscalationMatrix_NormalizesMissingLevels(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/clients/1/escalation-matrix", http.StatusOK, gin.H{
		"L1": []gin.H{{"id": 3, "email": "soc@acme.io", "level": "L1"}},
	})

	m, err := client.EscalationMatrix(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, m.L1, 1)
	assert.NotNil(t, m.L2)
	assert.NotNil(t, m.L3)
}

func TestListFeeds_ScopedByTechStack(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/rss-feeds", http.StatusOK, []gin.H{{"id": 1, "url": "http://a"}})

	feeds, err := client.ListFeeds(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []models.RssFeed{{ID: 1, URL: "http://a"}}, feeds)

	reqs := fake.RequestsTo(http.MethodGet, "/api/rss-feeds")
	require.Len(t, reqs, 1)
	assert.Equal(t, "techStackId=5", reqs[0].Query)
}

func TestDeleteFeeds_SendsBodyOnDelete(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodDelete, "/api/rss-feeds", http.StatusOK, gin.H{"message": "2 RSS feed(s) deleted successfully."})

	_, err := client.DeleteFeeds(context.Background(), models.FeedDeleteRequest{TechStackID: 5, URLs: []string{"http://a", "http://b"}})
	require.NoError(t, err)

	reqs := fake.RequestsTo(http.MethodDelete, "/api/rss-feeds")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"tech_stack_id":5,"urls":["http://a","http://b"]}`, string(reqs[0].Body))
}

func TestSearchKB_Query(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/kb-search", http.StatusOK, []gin.H{{"ID": 1, "Title": "VPN drops"}})

	_, err := client.SearchKB(context.Background(), "")
	require.NoError(t, err)
	entries, err := client.SearchKB(context.Background(), "vpn drops")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "VPN drops", entries[0].Title)

	reqs := fake.RequestsTo(http.MethodGet, "/api/kb-search")
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].Query)
	assert.Equal(t, "query=vpn+drops", reqs[1].Query)
}

func TestImportKB_Multipart(t *testing.T) {
	client, fake := newClient(t)
	var gotName, gotType, gotData string
	fake.Handle(http.MethodPost, "/api/kb_table-import", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file part in the request"})
			return
		}
		f, _ := fh.Open()
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName, gotType, gotData = fh.Filename, fh.Header.Get("Content-Type"), string(data)
		c.JSON(http.StatusOK, gin.H{"message": "Imported"})
	})

	resp, err := client.ImportKB(context.Background(), backoffice.Upload{FileName: "tickets.csv", Data: []byte("ID,Title\n1,VPN\n")})
	require.NoError(t, err)
	assert.Equal(t, "Imported", resp.Message)
	assert.Equal(t, "tickets.csv", gotName)
	assert.Contains(t, gotType, "text/")
	assert.Equal(t, "ID,Title\n1,VPN\n", gotData)
}

func TestUploadClientPDF_Multipart(t *testing.T) {
	client, fake := newClient(t)
	var clientID string
	fake.Handle(http.MethodPost, "/api/upload-pdf", func(c *gin.Context) {
		if _, err := c.FormFile("pdf"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file or clientId"})
			return
		}
		clientID = c.PostForm("clientId")
		c.JSON(http.StatusOK, gin.H{"fileName": "client_" + clientID + ".pdf"})
	})

	doc, err := client.UploadClientPDF(context.Background(), 7, backoffice.Upload{FileName: "runbook.pdf", Data: []byte("%PDF-1.4\n")})
	require.NoError(t, err)
	assert.Equal(t, "7", clientID)
	assert.Equal(t, "client_7.pdf", doc.FileName)
}

func TestClientPDF_Missing(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/get-client-pdf", http.StatusOK, gin.H{"fileName": nil})

	doc, err := client.ClientPDF(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, doc.FileName)
	assert.Equal(t, "clientId=7", fake.Requests()[0].Query)
}

func TestRunbookListsUseClientQuery(t *testing.T) {
	client, fake := newClient(t)
	fake.Reply(http.MethodGet, "/api/assets", http.StatusOK, []gin.H{})
	fake.Reply(http.MethodGet, "/api/sla", http.StatusOK, []gin.H{})

	ctx := context.Background()
	_, err := client.ListAssets(ctx, 3)
	require.NoError(t, err)
	_, err = client.ListSLAPolicies(ctx, 3)
	require.NoError(t, err)

	for _, r := range fake.Requests() {
		assert.Equal(t, "client=3", r.Query, r.Path)
	}
}
