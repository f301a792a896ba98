package main

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedViewer(t *testing.T) {
	page, err := fs.ReadFile(uiDist, "ui/index.html")
	if err != nil {
		t.Fatalf("index.html not embedded: %v", err)
	}
	// The page reads the fragment and goes through the open/unlock API.
	for _, want := range []string{"location.hash", "/api/memories/open", "/api/memories/unlock", "/api/memories\""} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page does not reference %s", want)
		}
	}
}
