package joinlink

import "testing"

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		groupID string
		want    string
	}{
		{name: "plain base", baseURL: "https://warikan.app", groupID: "g1", want: "https://warikan.app/join/g1"},
		{name: "trailing slash trimmed", baseURL: "https://warikan.app/", groupID: "g1", want: "https://warikan.app/join/g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.baseURL, tt.groupID); got != tt.want {
				t.Errorf("Build() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGroupID(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "join link", link: "https://warikan.app/join/g1", want: "g1"},
		{name: "any path shape, last segment wins", link: "https://example.com/a/b/xyz", want: "xyz"},
		{name: "bare id", link: "g1", want: "g1"},
		{name: "trailing slash yields empty", link: "https://warikan.app/join/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupID(tt.link); got != tt.want {
				t.Errorf("GroupID(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	link := Build("https://warikan.app", "abc-123")
	if got := GroupID(link); got != "abc-123" {
		t.Errorf("GroupID(Build()) = %q, want abc-123", got)
	}
}
