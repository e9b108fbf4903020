package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/live"
	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/repository"
	"github.com/iliyamo/home-inventory/internal/utils"
)

type memPublisher struct {
	mu     sync.Mutex
	events []queue.Event
}

func (p *memPublisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func newTestServer(t *testing.T, authSecret string) (*echo.Echo, *memPublisher) {
	t.Helper()
	pub := &memPublisher{}
	e := New(Deps{
		Store:      repository.NewStore(database.NewTestDB(t)),
		Publisher:  pub,
		AuthSecret: authSecret,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return e, pub
}

func do(t *testing.T, e *echo.Echo, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// create posts body and returns the id of the new record.
func create(t *testing.T, e *echo.Echo, path, body string) int64 {
	t.Helper()
	rec := do(t, e, http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.ID
}

func TestPublicRoutes(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := do(t, e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Home Inventory System API"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestHouseRoomScenario(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := do(t, e, http.MethodPost, "/houses/", `{"name":"Main House"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Main House","address":null}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/rooms/", `{"name":"Kitchen","house_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Kitchen","house_id":1}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/rooms/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Kitchen","house_id":1}`, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/rooms/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Room deleted successfully"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/rooms/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Room not found"}`, rec.Body.String())
}

func TestTrailingSlashOptional(t *testing.T) {
	e, _ := newTestServer(t, "")
	create(t, e, "/houses", `{"name":"A"}`)

	for _, path := range []string{"/houses", "/houses/", "/houses/1", "/houses/1/"} {
		rec := do(t, e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestItemPartialUpdate(t *testing.T) {
	e, _ := newTestServer(t, "")
	h := create(t, e, "/houses/", `{"name":"Main House","address":"1 Elm St"}`)
	r := create(t, e, "/rooms/", `{"name":"Kitchen","house_id":`+itoa(h)+`}`)
	l := create(t, e, "/locations/", `{"name":"Pantry","room_id":`+itoa(r)+`}`)
	c := create(t, e, "/containers/", `{"name":"Top Shelf","location_id":`+itoa(l)+`}`)
	id := create(t, e, "/items/", `{"name":"Milk","category":"Dairy","expiry_date":"2030-01-31","container_id":`+itoa(c)+`}`)

	rec := do(t, e, http.MethodPut, "/items/"+itoa(id), `{"category":"Groceries"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Milk","category":"Groceries","expiry_date":"2030-01-31","container_id":1}`, rec.Body.String())

	rec = do(t, e, http.MethodPut, "/items/"+itoa(id), `{"expiry_date":null,"container_id":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Milk","category":"Groceries","expiry_date":null,"container_id":null}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/items/unassigned", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Milk","category":"Groceries","expiry_date":null,"container_id":null}]`, rec.Body.String())

	rec = do(t, e, http.MethodPut, "/houses/"+itoa(h), `{"address":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Main House","address":null}`, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	e, _ := newTestServer(t, "")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"missing name", http.MethodPost, "/houses/", `{}`, "name"},
		{"wrong type", http.MethodPost, "/houses/", `{"name":5}`, "name"},
		{"not an object", http.MethodPost, "/houses/", `[1,2]`, "body"},
		{"empty body", http.MethodPost, "/rooms/", ``, "body"},
		{"missing parent", http.MethodPost, "/rooms/", `{"name":"Kitchen"}`, "house_id"},
		{"bad date", http.MethodPost, "/items/", `{"name":"Milk","category":"Dairy","expiry_date":"31/01/2030"}`, "expiry_date"},
		{"null name", http.MethodPut, "/houses/1", `{"name":null}`, "name"},
		{"bad id", http.MethodGet, "/houses/abc", ``, "id"},
		{"negative skip", http.MethodGet, "/houses/?skip=-1", ``, "skip"},
		{"zero limit", http.MethodGet, "/houses/?limit=0", ``, "limit"},
		{"text limit", http.MethodGet, "/houses/?limit=ten", ``, "limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, e, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

			var out struct {
				Detail []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			require.NotEmpty(t, out.Detail)
			assert.Equal(t, tc.field, out.Detail[0].Field)
			assert.NotEmpty(t, out.Detail[0].Message)
		})
	}
}

func TestUnknownParent(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := do(t, e, http.MethodPost, "/rooms/", `{"name":"Kitchen","house_id":99}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":[{"field":"house_id","message":"House does not exist"}]}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/items/", `{"name":"Salt","category":"Spices","container_id":7}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":[{"field":"container_id","message":"Container does not exist"}]}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/rooms/", "")
	assert.JSONEq(t, `[]`, rec.Body.String(), "failed create leaves nothing behind")
}

func TestNotFound(t *testing.T) {
	e, _ := newTestServer(t, "")

	for path, want := range map[string]string{
		"/houses/9":     "House not found",
		"/rooms/9":      "Room not found",
		"/locations/9":  "Location not found",
		"/containers/9": "Container not found",
		"/items/9":      "Item not found",
	} {
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			rec := do(t, e, method, path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code, method+" "+path)
			assert.JSONEq(t, `{"detail":"`+want+`"}`, rec.Body.String())
		}
		rec := do(t, e, http.MethodPut, path, `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code, "PUT "+path)
	}
}

func TestDeleteWithChildrenConflicts(t *testing.T) {
	e, pub := newTestServer(t, "")
	h := create(t, e, "/houses/", `{"name":"Main House"}`)
	r := create(t, e, "/rooms/", `{"name":"Kitchen","house_id":`+itoa(h)+`}`)

	rec := do(t, e, http.MethodDelete, "/houses/"+itoa(h), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"House has rooms and cannot be deleted"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/houses/"+itoa(h), "")
	assert.Equal(t, http.StatusOK, rec.Code, "refused delete leaves the house in place")

	require.Equal(t, http.StatusOK, do(t, e, http.MethodDelete, "/rooms/"+itoa(r), "").Code)
	require.Equal(t, http.StatusOK, do(t, e, http.MethodDelete, "/houses/"+itoa(h), "").Code)

	actions := make([]string, 0, len(pub.events))
	for _, ev := range pub.events {
		actions = append(actions, ev.Entity+"."+ev.Action)
	}
	assert.Equal(t, []string{"house.created", "room.created", "room.deleted", "house.deleted"}, actions)
}

func TestPagination(t *testing.T) {
	e, _ := newTestServer(t, "")
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		create(t, e, "/houses/", `{"name":"`+name+`"}`)
	}

	names := func(path string) []string {
		rec := do(t, e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		got := make([]string, 0, len(out))
		for _, o := range out {
			got = append(got, o.Name)
		}
		return got
	}

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names("/houses/"))
	assert.Equal(t, []string{"B", "C"}, names("/houses/?skip=1&limit=2"))
	assert.Equal(t, []string{"E"}, names("/houses/?skip=4"))
	assert.Empty(t, names("/houses/?skip=10"))
}

func TestChildNavigation(t *testing.T) {
	e, _ := newTestServer(t, "")
	h := create(t, e, "/houses/", `{"name":"Main House"}`)
	r := create(t, e, "/rooms/", `{"name":"Kitchen","house_id":`+itoa(h)+`}`)
	l := create(t, e, "/locations/", `{"name":"Pantry","room_id":`+itoa(r)+`}`)
	c := create(t, e, "/containers/", `{"name":"Top Shelf","location_id":`+itoa(l)+`}`)
	create(t, e, "/items/", `{"name":"Salt","category":"Spices","container_id":`+itoa(c)+`}`)

	rec := do(t, e, http.MethodGet, "/houses/"+itoa(h)+"/rooms", "")
	assert.JSONEq(t, `[{"id":1,"name":"Kitchen","house_id":1}]`, rec.Body.String())
	rec = do(t, e, http.MethodGet, "/rooms/"+itoa(r)+"/locations", "")
	assert.JSONEq(t, `[{"id":1,"name":"Pantry","room_id":1}]`, rec.Body.String())
	rec = do(t, e, http.MethodGet, "/locations/"+itoa(l)+"/containers", "")
	assert.JSONEq(t, `[{"id":1,"name":"Top Shelf","location_id":1}]`, rec.Body.String())
	rec = do(t, e, http.MethodGet, "/containers/"+itoa(c)+"/items", "")
	assert.JSONEq(t, `[{"id":1,"name":"Salt","category":"Spices","expiry_date":null,"container_id":1}]`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/houses/42/rooms", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"House not found"}`, rec.Body.String())
}

func TestBearerAuth(t *testing.T) {
	e, _ := newTestServer(t, "s3cret")

	rec := do(t, e, http.MethodGet, "/houses/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health stays open")

	tok, err := utils.NewAccessToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	rec = do(t, e, http.MethodGet, "/houses/", "", echo.HeaderAuthorization, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestLiveHubReceivesCommittedEvents(t *testing.T) {
	hub := live.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	pub := &memPublisher{}
	e := New(Deps{
		Store:     repository.NewStore(database.NewTestDB(t)),
		Publisher: pub,
		Hub:       hub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	create(t, e, "/houses/", `{"name":"Main House"}`)
	require.Len(t, pub.events, 1, "the broker publisher still receives events")

	rec := do(t, e, http.MethodGet, "/ws", "")
	assert.NotEqual(t, http.StatusNotFound, rec.Code, "live feed is routed")
}
