package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/suggest" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["title"] != "Eid" || req["theme"] != "modern" || req["session_id"] != "cli" {
			t.Errorf("request = %v", req)
		}
		w.Write([]byte(`{"message":"Eid Mubarak!"}`))
	}))
	defer srv.Close()

	msg, err := New(srv.URL+"/").Suggest(context.Background(), "cli", "Eid", "modern")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if msg != "Eid Mubarak!" {
		t.Errorf("msg = %q", msg)
	}
}

func TestPostErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"a suggestion is already being generated"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Suggest(context.Background(), "s", "t", "")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusConflict || se.Message != "a suggestion is already being generated" {
		t.Errorf("se = %+v", se)
	}
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	if !New(srv.URL).Healthy(context.Background()) {
		t.Error("expected healthy")
	}
	srv.Close()
	if New(srv.URL).Healthy(context.Background()) {
		t.Error("closed server should not be healthy")
	}
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("MEMORIA_URL", "")
	if c := New(""); c.serverURL != defaultServerURL {
		t.Errorf("serverURL = %q", c.serverURL)
	}
	t.Setenv("MEMORIA_URL", "http://10.0.0.2:9000/")
	if c := New(""); c.serverURL != "http://10.0.0.2:9000" {
		t.Errorf("serverURL = %q", c.serverURL)
	}
}
