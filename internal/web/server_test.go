package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/source"
	"github.com/davetashner/triage/internal/store"
)

const sample = `{"issues":[
 {"file":"a.php","line":5,"severity":"critical","type":"X","message":"boom"},
 {"file":"a.php","line":9,"severity":"info","type":"Y","message":"note"},
 {"file":"b.php","line":1,"severity":"warning","type":"Z","message":"careful"}
]}`

type testServer struct {
	*httptest.Server
	dash    *dashboard.Dashboard
	notices *NoticeBoard
}

func newTestServer(t *testing.T, demo dashboard.Loader) *testServer {
	t.Helper()
	notices := &NoticeBoard{}
	d := dashboard.New(store.New(store.NewMemoryBackend()), dashboard.Options{Observer: notices})
	srv := httptest.NewServer(New(d, Options{Demo: demo, Notices: notices}))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, dash: d, notices: notices}
}

func (ts *testServer) post(t *testing.T, path, body string) (int, viewResponse, string) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	var v viewResponse
	_ = json.Unmarshal(raw, &v)
	var e struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(raw, &e)
	return resp.StatusCode, v, e.Error
}

func TestImportAndView(t *testing.T) {
	ts := newTestServer(t, nil)

	status, v, _ := ts.post(t, "/api/import?name=r.json", sample)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, v.Issues, 3)
	assert.Equal(t, "r.json", v.Metadata.Source)
	assert.Equal(t, "Report loaded", v.Notice)

	resp, err := http.Get(ts.URL + "/api/view")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got viewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 3, got.Metadata.Total)
	assert.Equal(t, dashboard.ThemeLight, got.Theme)
}

func TestImportErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	status, _, _ := ts.post(t, "/api/import", sample)
	require.Equal(t, http.StatusOK, status)

	status, _, msg := ts.post(t, "/api/import", "<checkstyle><file></checkstyle>")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "Parse error")
	assert.Equal(t, 3, ts.dash.View().Total, "failed import keeps the loaded report")

	status, _, msg = ts.post(t, "/api/import", "   ")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Empty file", msg)
}

func TestToggleDoneAndFilters(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.post(t, "/api/import", sample)

	status, v, _ := ts.post(t, "/api/toggle", `{"id":"a.php:5"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, v.Metadata.Done)

	_, v, _ = ts.post(t, "/api/done", `{"id":"b.php:1","done":true}`)
	assert.Equal(t, 2, v.Metadata.Done)

	_, v, _ = ts.post(t, "/api/filter", `{"only_incomplete":true}`)
	assert.Len(t, v.Issues, 1)

	_, v, _ = ts.post(t, "/api/filter", `{"only_incomplete":false,"severities":["critical","high"]}`)
	assert.Len(t, v.Issues, 2)
	assert.False(t, ts.dash.Filter().Severities.Has(severity.Info))

	_, v, _ = ts.post(t, "/api/filter", `{"query":"BOOM"}`)
	assert.Len(t, v.Issues, 1)

	status, _, _ = ts.post(t, "/api/filter", `{"severities":["urgent"]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, msg := ts.post(t, "/api/toggle", `{"id":"nope.php:1"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, msg, "no issue matches")
}

func TestFileSortResetThemeLang(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.post(t, "/api/import", sample)
	ts.post(t, "/api/toggle", `{"id":"a.php:5"}`)

	_, v, _ := ts.post(t, "/api/file", `{"file":"a.php"}`)
	assert.Len(t, v.Issues, 2)
	assert.Equal(t, "a.php", v.Metadata.ActiveFile)
	_, v, _ = ts.post(t, "/api/file", `{}`)
	assert.Len(t, v.Issues, 3)

	_, v, _ = ts.post(t, "/api/sort", `{"key":"line"}`)
	assert.Equal(t, 1, v.Issues[0].Line)
	_, v, _ = ts.post(t, "/api/sort", `{"key":"line","dir":"desc"}`)
	assert.Equal(t, 9, v.Issues[0].Line)
	status, _, _ := ts.post(t, "/api/sort", `{"key":"color"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	_, v, _ = ts.post(t, "/api/reset", "")
	assert.Zero(t, v.Metadata.Done)
	assert.Equal(t, 3, v.Metadata.Total)

	_, v, _ = ts.post(t, "/api/theme", "")
	assert.Equal(t, dashboard.ThemeDark, v.Theme)
	_, v, _ = ts.post(t, "/api/lang", `{"lang":"fr"}`)
	assert.EqualValues(t, "fr", v.Lang)
	status, _, _ = ts.post(t, "/api/lang", `{"lang":"de"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDemo(t *testing.T) {
	ts := newTestServer(t, func(context.Context) ([]byte, string, error) {
		return source.Demo(), source.DemoSource, nil
	})
	status, v, _ := ts.post(t, "/api/demo", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", v.Metadata.Source)
	assert.Equal(t, 13, v.Metadata.Total)

	missing := newTestServer(t, nil)
	status, _, msg := missing.post(t, "/api/demo", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No demo report found", msg)
}

func TestDemoNetworkError(t *testing.T) {
	ts := newTestServer(t, func(context.Context) ([]byte, string, error) {
		return nil, "", &source.NetworkError{Op: "fetch", URL: "http://x", Err: errors.New("refused")}
	})
	status, _, msg := ts.post(t, "/api/demo", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, msg, "Network error")
}

func TestIndexAndExport(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.post(t, "/api/import", sample)
	ts.post(t, "/api/toggle", `{"id":"a.php:5"}`)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	resp, err = http.Get(ts.URL + "/api/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "triage-state.json")
	var c map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	assert.Len(t, c, 1)

	resp, err = http.Get(ts.URL + "/api/toggle")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestListenAndServeShutsDown(t *testing.T) {
	d := dashboard.New(store.New(store.NewMemoryBackend()), dashboard.Options{})
	srv := New(d, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a }) }()

	addr := <-addrc
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
