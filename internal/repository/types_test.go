package repository

import (
	"strings"
	"testing"
)

func TestParseRepositoryURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RepositoryConfig
		wantErr bool
	}{
		{
			name:  "shorthand",
			input: "octo/tools",
			want:  RepositoryConfig{Host: "github.com", Owner: "octo", Repo: "tools"},
		},
		{
			name:  "https with .git",
			input: "https://github.com/octo/tools.git",
			want:  RepositoryConfig{Host: "github.com", Owner: "octo", Repo: "tools"},
		},
		{
			name:  "https with trailing slash and whitespace",
			input: "  https://github.com/octo/tools/  ",
			want:  RepositoryConfig{Host: "github.com", Owner: "octo", Repo: "tools"},
		},
		{
			name:  "tree URL selects branch",
			input: "https://github.com/octo/tools/tree/feature/x",
			want:  RepositoryConfig{Host: "github.com", Owner: "octo", Repo: "tools", Branch: "feature/x"},
		},
		{
			name:  "ssh",
			input: "git@git.company.com:team/project.git",
			want:  RepositoryConfig{Host: "git.company.com", Owner: "team", Repo: "project"},
		},
		{
			name:  "ssh scheme",
			input: "ssh://git@github.com/octo/tools.git",
			want:  RepositoryConfig{Host: "github.com", Owner: "octo", Repo: "tools"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "missing repo", input: "https://github.com/octo", wantErr: true},
		{name: "unsupported scheme", input: "ftp://github.com/octo/tools", wantErr: true},
		{name: "no host", input: "https:///octo/tools", wantErr: true},
		{name: "bad owner", input: "https://github.com/oc to/tools", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepositoryURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRepositoryURL(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepositoryURL(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRepositoryURL(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepositoryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RepositoryConfig
		wantErr string
	}{
		{"valid", RepositoryConfig{Owner: "octo", Repo: "tools", Branch: "release/1.0"}, ""},
		{"empty owner", RepositoryConfig{Repo: "tools"}, "owner cannot be empty"},
		{"empty repo", RepositoryConfig{Owner: "octo"}, "name cannot be empty"},
		{"bad repo", RepositoryConfig{Owner: "octo", Repo: "a/b"}, "invalid repository name"},
		{"dotdot branch", RepositoryConfig{Owner: "octo", Repo: "tools", Branch: "a..b"}, "invalid branch"},
		{"space branch", RepositoryConfig{Owner: "octo", Repo: "tools", Branch: "a b"}, "invalid branch"},
		{"trailing slash branch", RepositoryConfig{Owner: "octo", Repo: "tools", Branch: "a/"}, "invalid branch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRepositoryConfig_CloneURLAndString(t *testing.T) {
	cfg := RepositoryConfig{Owner: "octo", Repo: "tools"}
	if got := cfg.CloneURL(); got != "https://github.com/octo/tools.git" {
		t.Errorf("CloneURL() = %q", got)
	}
	if got := cfg.String(); got != "octo/tools" {
		t.Errorf("String() = %q", got)
	}

	cfg = RepositoryConfig{Host: "git.company.com", Owner: "team", Repo: "project", Branch: "dev"}
	if got := cfg.CloneURL(); got != "https://git.company.com/team/project.git" {
		t.Errorf("CloneURL() = %q", got)
	}
	if got := cfg.String(); got != "git.company.com/team/project@dev" {
		t.Errorf("String() = %q", got)
	}
}
