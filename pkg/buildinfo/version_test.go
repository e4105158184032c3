package buildinfo

import (
	"strings"
	"testing"
)

func TestGetLdflags(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	got := Get()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if s := String(); s != "version: v1.2.3\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z" {
		t.Errorf("String() = %q", s)
	}
	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", tpl)
	}
}

func TestGetDev(t *testing.T) {
	got := Get()
	if got.Version == "" {
		t.Error("Version should never be empty")
	}
	if got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v, want commit %q date %q", got, Commit, Date)
	}
}
