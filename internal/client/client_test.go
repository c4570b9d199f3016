package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExecuteRows(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`))
	}))
	defer srv.Close()

	cl := New(srv.URL, 5*time.Second)
	res := cl.Execute(context.Background(), "SELECT * FROM users")

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.HasSuffix(gotQuery, ";") {
		t.Errorf("query not semicolon-terminated: %q", gotQuery)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	cols := res.Rows[0].Columns()
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "name" {
		t.Errorf("columns = %v, want [id name]", cols)
	}
	if v, ok := res.Rows[0].Get("name"); !ok || v != "Alice" {
		t.Errorf("name = %v, want Alice", v)
	}
}

func TestExecuteKeepsExistingSemicolon(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req.Query
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cl := New(srv.URL, 5*time.Second)
	cl.Execute(context.Background(), "SELECT 1;")

	if gotQuery != "SELECT 1;" {
		t.Errorf("query = %q, want %q", gotQuery, "SELECT 1;")
	}
}

func TestExecuteAffectedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"affectedRows":3}`))
	}))
	defer srv.Close()

	cl := New(srv.URL, 5*time.Second)
	res := cl.Execute(context.Background(), "DELETE FROM users;")

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.HasRows() {
		t.Error("expected no row set")
	}
	if res.AffectedRows == nil || *res.AffectedRows != 3 {
		t.Errorf("affectedRows = %v, want 3", res.AffectedRows)
	}
}

func TestExecuteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("syntax error near SELEC"))
	}))
	defer srv.Close()

	cl := New(srv.URL, 5*time.Second)
	res := cl.Execute(context.Background(), "SELEC 1")

	if res.Error != "syntax error near SELEC" {
		t.Errorf("error = %q, want body text", res.Error)
	}
}

func TestExecuteTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	cl := New(srv.URL, 50*time.Millisecond)
	res := cl.Execute(context.Background(), "SELECT SLEEP(10)")

	if res.Error == "" {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(res.Error, "timed out") {
		t.Errorf("error = %q, want timeout message", res.Error)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	// Point at a closed server so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cl := New(srv.URL, time.Second)
	res := cl.Execute(context.Background(), "SELECT 1")

	if res.Error == "" {
		t.Fatal("transport failure must surface as result error, not panic or nil")
	}
}

func TestTestConnection(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{
			name: "healthy endpoint",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"rows":[{"1":1}]}`))
			},
			want: true,
		},
		{
			name: "failing endpoint",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			cl := New(srv.URL, time.Second)
			if got := cl.TestConnection(context.Background()); got != tt.want {
				t.Errorf("TestConnection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowPreservesKeyOrder(t *testing.T) {
	var row Row
	if err := json.Unmarshal([]byte(`{"zeta":1,"alpha":"x","mid":null}`), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cols := row.Columns()
	want := []string{"zeta", "alpha", "mid"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("columns[%d] = %q, want %q", i, cols[i], want[i])
		}
	}
	if v, ok := row.Get("mid"); !ok || v != nil {
		t.Errorf("mid = %v (present=%v), want nil present", v, ok)
	}
}
