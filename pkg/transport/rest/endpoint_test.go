package rest

import (
	"testing"

	"github.com/saturnines/labclient/pkg/errors"
)

func TestEndpointResolve(t *testing.T) {
	e := NewEndpoint("https://git.example.com/", "")

	cases := []struct {
		path string
		want string
	}{
		{"/projects", "https://git.example.com/api/v4/projects"},
		{"projects", "https://git.example.com/api/v4/projects"},
		{"/projects?page=1&per_page=20", "https://git.example.com/api/v4/projects?page=1&per_page=20"},
		{"/projects/group%2Fproject", "https://git.example.com/api/v4/projects/group%2Fproject"},
		{"https://git.example.com/api/v4/projects?page=2", "https://git.example.com/api/v4/projects?page=2"},
	}

	for _, tc := range cases {
		u, err := e.Resolve(tc.path)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tc.path, err)
		}
		if got := u.String(); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestEndpointRoot(t *testing.T) {
	if got := NewEndpoint("http://localhost:1080", "v3").Root(); got != "http://localhost:1080/api/v3" {
		t.Errorf("unexpected root %q", got)
	}
	if got := (Endpoint{Host: "https://git.example.com"}).Root(); got != "https://git.example.com/api/v4" {
		t.Errorf("zero-value version should default, got %q", got)
	}
}

func TestEndpointResolve_InvalidHost(t *testing.T) {
	_, err := NewEndpoint("git.example.com", "v4").Resolve("/projects")
	if err == nil {
		t.Fatal("expected error for host without scheme")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
