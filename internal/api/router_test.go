package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/api"
	"advisory-console/internal/backoffice"
	"advisory-console/internal/backoffice/backofficetest"
	"advisory-console/internal/console"
	"advisory-console/internal/logging"
	"advisory-console/internal/models"
)

func newRouter(t *testing.T) (*gin.Engine, *backofficetest.Server) {
	t.Helper()
	fake := backofficetest.New(t)
	cfg := fake.Config()
	logger := logging.NewNop()
	svc := console.New(backoffice.New(cfg, logger), logger, cfg)
	return api.NewRouter(svc, logger, cfg), fake
}

func do(t *testing.T, r http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func openSession(t *testing.T, r http.Handler) console.Snapshot {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v0/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var snap console.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOpenSession_AdminHeader(t *testing.T) {
	r, _ := newRouter(t)
	w := do(t, r, http.MethodPost, "/api/v0/sessions", nil, http.Header{api.AdminHeader: {"true"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var snap console.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.IsAdmin)
	assert.NotEmpty(t, snap.SessionID)
	assert.True(t, snap.Advisory.Capabilities.AIGeneration)
}

func TestUnknownSessionIs404(t *testing.T) {
	r, _ := newRouter(t)
	w := do(t, r, http.MethodPost, "/api/v0/sessions/missing/clients/load", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, console.ErrSessionNotFound.Error(), errorBody(t, w))
}

func TestValidationIs422WithoutRequest(t *testing.T) {
	r, fake := newRouter(t)
	id := openSession(t, r).SessionID

	w := do(t, r, http.MethodPost, "/api/v0/sessions/"+id+"/advisory/submit", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Please fill out the basic advisory fields (Tech, Type, Summary).", errorBody(t, w))
	assert.Empty(t, fake.Requests())
}

func TestBackofficeErrorIs502Verbatim(t *testing.T) {
	r, fake := newRouter(t)
	fake.Reply(http.MethodGet, "/api/clients", http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
	id := openSession(t, r).SessionID

	w := do(t, r, http.MethodPost, "/api/v0/sessions/"+id+"/clients/load", nil, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Database unavailable", errorBody(t, w))
}

func TestTransportFailureIs502(t *testing.T) {
	r, fake := newRouter(t)
	id := openSession(t, r).SessionID
	fake.Close()

	w := do(t, r, http.MethodPost, "/api/v0/sessions/"+id+"/clients/load", nil, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEmpty(t, errorBody(t, w))
}

func TestInvalidBodyIs400(t *testing.T) {
	r, _ := newRouter(t)
	id := openSession(t, r).SessionID

	req := httptest.NewRequest(http.MethodPost, "/api/v0/sessions/"+id+"/clients/search", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectClientReturnsSnapshot(t *testing.T) {
	r, fake := newRouter(t)
	fake.Reply(http.MethodGet, "/api/clients/4/advisories", http.StatusOK, []gin.H{{"id": 1, "update_type": "", "status": "Draft"}})
	fake.Reply(http.MethodGet, "/api/clients/4/feed-items", http.StatusOK, []gin.H{})
	fake.Reply(http.MethodGet, "/api/clients/4/escalation-matrix", http.StatusOK, gin.H{})
	id := openSession(t, r).SessionID

	w := do(t, r, http.MethodPost, "/api/v0/sessions/"+id+"/clients/select", gin.H{"client_id": 4}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap console.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 4, snap.Advisory.SelectedClientID)
	require.Len(t, snap.Cards, 1)
	assert.Equal(t, "Consolidated Draft", snap.Cards[0].Title)
}

func TestDispatchReportsNotificationFailure(t *testing.T) {
	r, fake := newRouter(t)
	fake.Reply(http.MethodGet, "/api/clients/4/advisories", http.StatusOK, []gin.H{{"id": 8, "update_type": "Informational", "status": "Draft"}})
	fake.Reply(http.MethodGet, "/api/clients/4/feed-items", http.StatusOK, []gin.H{})
	fake.Reply(http.MethodGet, "/api/clients/4/escalation-matrix", http.StatusOK, gin.H{})
	fake.Reply(http.MethodPut, "/api/advisories/8", http.StatusOK, gin.H{"message": "ok"})
	fake.Reply(http.MethodPost, "/api/dispatch-advisory", http.StatusServiceUnavailable, gin.H{"message": "Mailer offline"})
	id := openSession(t, r).SessionID
	base := "/api/v0/sessions/" + id

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/clients/select", gin.H{"client_id": 4}, nil).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/editor/open", gin.H{"advisory_id": 8}, nil).Code)

	w := do(t, r, http.MethodPost, base+"/editor/dispatch", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		StatusUpdated     bool             `json:"status_updated"`
		NotificationError string           `json:"notification_error"`
		Snapshot          console.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.StatusUpdated)
	assert.Equal(t, "Mailer offline", resp.NotificationError)
	assert.Equal(t, models.StatusSent, resp.Snapshot.Cards[0].Status)

	w = do(t, r, http.MethodPost, base+"/editor/edit", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFormattedView(t *testing.T) {
	r, fake := newRouter(t)
	fake.Reply(http.MethodGet, "/api/clients/4/advisories", http.StatusOK, []gin.H{{
		"id": 8, "update_type": "Vulnerability Alert", "service_or_os": "Nginx", "description": "Upgrade", "status": "Draft",
		"technical_analysis": "a\nb\nc\nd\ne\nf\ng",
	}})
	fake.Reply(http.MethodGet, "/api/clients/4/feed-items", http.StatusOK, []gin.H{})
	fake.Reply(http.MethodGet, "/api/clients/4/escalation-matrix", http.StatusOK, gin.H{})
	id := openSession(t, r).SessionID
	base := "/api/v0/sessions/" + id

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/clients/select", gin.H{"client_id": 4}, nil).Code)
	w := do(t, r, http.MethodGet, base+"/advisories/8/formatted", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Formatted struct {
			Header   string `json:"header"`
			Category string `json:"category"`
		} `json:"formatted"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Update: Vulnerability Alert for Nginx", resp.Formatted.Header)
	assert.Equal(t, "Malware", resp.Formatted.Category)
	assert.Contains(t, resp.Text, "  - e")
	assert.NotContains(t, resp.Text, "  - f")

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, base+"/advisories/x/formatted", nil, nil).Code)
}

func TestStreamPushesSnapshots(t *testing.T) {
	r, fake := newRouter(t)
	fake.Reply(http.MethodGet, "/api/clients", http.StatusOK, []any{[]any{1, "Acme"}, []any{2, "Globex"}})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	id := openSession(t, r).SessionID

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v0/sessions/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snap console.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, id, snap.SessionID)
	assert.Empty(t, snap.Advisory.Clients)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/v0/sessions/"+id+"/clients/load", nil, nil).Code)
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Len(t, snap.Advisory.Clients, 2)
	assert.Greater(t, snap.Version, uint64(0))
}

func TestStreamUnknownSession(t *testing.T) {
	r, _ := newRouter(t)
	w := do(t, r, http.MethodGet, "/api/v0/sessions/missing/ws", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
