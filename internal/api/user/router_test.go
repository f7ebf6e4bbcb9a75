package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/pubsub"
	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestSession(t *testing.T, broker *pubsub.Broker) (*session.Session, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds := resolver.Dataset{
		Users:    []resolver.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
		Problems: []resolver.Problem{{ID: 10, Name: "Sum", Points: 100}},
		Submissions: []resolver.Submission{
			{ID: 1, ProblemID: 10, UserID: 2, Time: 50, Points: 100},
			{ID: 2, ProblemID: 10, UserID: 1, Time: 300, Points: 100},
		},
	}
	res, err := resolver.New(ds, resolver.Options{FreezeTime: 240})
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	s := session.NewWithResolver(cfg, nil, nil, broker, res)
	return s, NewUserRouter(cfg, s, broker)
}

func TestGetState(t *testing.T) {
	_, r := newTestSession(t, pubsub.NewBroker())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env struct {
		Code int           `json:"code"`
		Data resolver.View `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != 0 || len(env.Data.Rows) != 2 || env.Data.Rows[0].Username != "bob" {
		t.Fatalf("state = %+v", env)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/step", nil))
	if w.Code == http.StatusOK {
		t.Fatal("viewer server exposes the step endpoint")
	}
}

func TestViewerPage(t *testing.T) {
	_, r := newTestSession(t, pubsub.NewBroker())
	for _, path := range []string{"/", "/board.js", "/some/client/route"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, w.Code)
		}
	}
}

// Names come from contestant-controlled data and must never be parsed as
// markup by the board.
func TestBoardRendersNamesAsText(t *testing.T) {
	_, r := newTestSession(t, pubsub.NewBroker())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/board.js", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /board.js status = %d", w.Code)
	}
	script := w.Body.String()
	for _, sink := range []string{"innerHTML", "outerHTML", "insertAdjacentHTML", "document.write"} {
		if strings.Contains(script, sink) {
			t.Errorf("board.js uses %s", sink)
		}
	}
	if !strings.Contains(script, "textContent") {
		t.Error("board.js does not set cell text with textContent")
	}
	if !strings.Contains(script, "safeImage(view.imageSrc)") {
		t.Error("board.js assigns the image source unchecked")
	}
}

func TestStateWebsocket(t *testing.T) {
	broker := pubsub.NewBroker()
	s, r := newTestSession(t, broker)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/state"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() resolver.View {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg struct {
			Stream string        `json:"stream"`
			Data   resolver.View `json:"data"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg.Data
	}

	if v := read(); v.Steps != 0 {
		t.Fatalf("initial view steps = %d", v.Steps)
	}
	s.Step(nil)
	if v := read(); v.Steps != 1 || v.Action != resolver.ActionMarkRow {
		t.Fatalf("view after step = %+v", v)
	}
}
