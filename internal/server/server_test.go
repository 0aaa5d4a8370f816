package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/table"
)

func peopleFactory(surface table.Surface) (*table.Widget, error) {
	return table.NewWidget(config.SampleRecords(), config.SampleColumns(), 2, surface)
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(config.ServerConfig{Addr: "127.0.0.1:0", Title: "People"}, peopleFactory, zerolog.Nop(), opts...)
}

// get performs a GET with the session cookie, when present, and returns the
// response together with the cookie to use next.
func get(t *testing.T, s *Server, path string, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return rec, c
		}
	}
	return rec, cookie
}

func TestServer_Index(t *testing.T) {
	s := newTestServer(t)

	rec, cookie := get(t, s, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>People</title>")
	assert.Contains(t, body, "<td>John</td>")
	assert.Contains(t, body, "<td>Jean</td>")
	assert.NotContains(t, body, "<td>Mary</td>")
	assert.Contains(t, body, `<a href="/page/1" class="btn number-controls" data-id="1">1</a>`)
	assert.Contains(t, body, `<a href="/sort/name">`)
	assert.Equal(t, 1, s.SessionCount())

	// The cookie resumes the same session.
	_, again := get(t, s, "/", cookie)
	assert.Equal(t, cookie.Value, again.Value)
	assert.Equal(t, 1, s.SessionCount())
}

func TestServer_Events(t *testing.T) {
	t.Run("next redirects and advances", func(t *testing.T) {
		s := newTestServer(t)
		_, cookie := get(t, s, "/", nil)

		rec, _ := get(t, s, "/next", cookie)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		rec, _ = get(t, s, "/", cookie)
		assert.Contains(t, rec.Body.String(), "<td>Mary</td>")
		assert.Contains(t, rec.Body.String(), `class="btn number-controls btn-primary" data-id="1"`)
	})

	t.Run("prev on first page is a no-op", func(t *testing.T) {
		s := newTestServer(t)
		_, cookie := get(t, s, "/", nil)

		rec, _ := get(t, s, "/prev", cookie)
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		rec, _ = get(t, s, "/", cookie)
		assert.Contains(t, rec.Body.String(), "<td>John</td>")
	})

	t.Run("page jump", func(t *testing.T) {
		s := newTestServer(t)
		_, cookie := get(t, s, "/", nil)

		rec, _ := get(t, s, "/page/2", cookie)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec, _ = get(t, s, "/", cookie)
		body := rec.Body.String()
		assert.Contains(t, body, "<td>Tom</td>")
		assert.Equal(t, 1, strings.Count(body, `class="table-row"`))
	})

	t.Run("sort toggles", func(t *testing.T) {
		s := newTestServer(t)
		_, cookie := get(t, s, "/", nil)

		get(t, s, "/next", cookie)
		rec, _ := get(t, s, "/sort/name", cookie)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec, _ = get(t, s, "/", cookie)
		body := rec.Body.String()
		assert.Contains(t, body, "<td>Jean</td>")
		assert.Contains(t, body, "<td>Jerry</td>")
		assert.Contains(t, body, `data-direction="asc"`)

		get(t, s, "/sort/name", cookie)
		rec, _ = get(t, s, "/", cookie)
		body = rec.Body.String()
		assert.Contains(t, body, "<td>Tom</td>")
		assert.Contains(t, body, "<td>Mary</td>")
		assert.Contains(t, body, `data-direction="desc"`)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		s := newTestServer(t)
		_, alice := get(t, s, "/", nil)
		_, bob := get(t, s, "/", nil)
		require.NotEqual(t, alice.Value, bob.Value)

		get(t, s, "/page/2", alice)

		rec, _ := get(t, s, "/", bob)
		assert.Contains(t, rec.Body.String(), "<td>John</td>")
		assert.Equal(t, 2, s.SessionCount())
	})
}

func TestServer_InvalidEvents(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "page out of range", path: "/page/7", want: "index out of range"},
		{name: "negative page", path: "/page/-1", want: "index out of range"},
		{name: "page not a number", path: "/page/two", want: "is not a number"},
		{name: "unsortable column", path: "/sort/description", want: "not sortable"},
		{name: "unknown column", path: "/sort/nope", want: "not sortable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			_, cookie := get(t, s, "/", nil)

			rec, _ := get(t, s, tt.path, cookie)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid Request")
			assert.Contains(t, rec.Body.String(), tt.want)

			rec, _ = get(t, s, "/", cookie)
			assert.Contains(t, rec.Body.String(), "<td>John</td>")
		})
	}
}

func TestServer_FactoryError(t *testing.T) {
	factory := func(table.Surface) (*table.Widget, error) {
		return nil, errors.New("data file missing")
	}
	s := New(config.ServerConfig{Title: "People"}, factory, zerolog.Nop())

	rec, cookie := get(t, s, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unexpected Error")
	assert.NotContains(t, rec.Body.String(), "data file missing")
	assert.Nil(t, cookie)
	assert.Zero(t, s.SessionCount())
}

func TestServer_UnknownSessionStartsFresh(t *testing.T) {
	s := newTestServer(t)

	rec, cookie := get(t, s, "/", &http.Cookie{Name: SessionCookie, Value: "stale"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "stale", cookie.Value)
	assert.Equal(t, 1, s.SessionCount())
}

func TestServer_EvictsOldestSession(t *testing.T) {
	s := newTestServer(t, WithMaxSessions(2))

	_, first := get(t, s, "/", nil)
	get(t, s, "/", nil)
	get(t, s, "/", nil)
	assert.Equal(t, 2, s.SessionCount())

	_, resumed := get(t, s, "/", first)
	assert.NotEqual(t, first.Value, resumed.Value)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)
	get(t, s, "/", nil)

	rec, _ := get(t, s, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":1}`, rec.Body.String())
}

func TestEventLink(t *testing.T) {
	assert.Equal(t, "/prev", eventLink(table.PrevEvent()))
	assert.Equal(t, "/next", eventLink(table.NextEvent()))
	assert.Equal(t, "/page/3", eventLink(table.PageEvent(3)))
	assert.Equal(t, "/sort/user%20name", eventLink(table.SortEvent("user name")))
}

func TestServer_SortEscapedField(t *testing.T) {
	var widget *table.Widget
	factory := func(surface table.Surface) (*table.Widget, error) {
		records := []table.Record{
			{"name": "A", "growth%": "3"},
			{"name": "B", "growth%": "1"},
			{"name": "C", "growth%": "2"},
		}
		columns := []table.Column{
			{DisplayName: "Name", FieldKey: "name"},
			{DisplayName: "Growth", FieldKey: "growth%", IsSortable: true},
		}
		w, err := table.NewWidget(records, columns, 2, surface)
		widget = w
		return w, err
	}
	s := New(config.ServerConfig{Addr: "127.0.0.1:0", Title: "Growth"}, factory, zerolog.Nop())
	_, cookie := get(t, s, "/", nil)

	link := eventLink(table.SortEvent("growth%"))
	require.Equal(t, "/sort/growth%25", link)

	rec, _ := get(t, s, link, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	require.NotNil(t, widget)
	sort := widget.Table().Sort()
	assert.True(t, sort.Active)
	assert.Equal(t, "growth%", sort.Field)
	assert.Equal(t, []table.Record{{"name": "B", "growth%": "1"}, {"name": "C", "growth%": "2"}}, widget.Table().CurrentPage())
}

func TestServer_ListenAndServe(t *testing.T) {
	// Reserve a free port, then release it for the server.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := New(config.ServerConfig{Addr: addr, Title: "People"}, peopleFactory, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
