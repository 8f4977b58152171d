package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"badnames/internal/driver"
)

func TestApplyEventCounts(t *testing.T) {
	files := []string{"a.go", "b.go", "c.tree.json"}
	m := NewProgressModel("badnames check", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.go", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.go", Stage: driver.StageCheck, Status: driver.StatusDone, Diagnostics: 3})
	m.applyEvent(driver.Event{File: "b.go", Stage: driver.StageCheck, Status: driver.StatusError, Cached: true})
	// repeated final events are not counted twice
	m.applyEvent(driver.Event{File: "b.go", Stage: driver.StageCheck, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.go", Stage: driver.StageCheck, Status: driver.StatusDone})

	if m.finished != 2 || m.failed != 1 || m.diags != 3 || m.cached != 1 {
		t.Fatalf("counters = finished %d failed %d diags %d cached %d", m.finished, m.failed, m.diags, m.cached)
	}
	view := m.View()
	for _, want := range []string{"2/3 files", "3 diagnostics", "1 with errors", "a.go (3)", "c.tree.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	var files []string
	for i := range 30 {
		files = append(files, strings.Repeat("x", i+1)+".go")
	}
	m := NewProgressModel("run", files, nil).(*progressModel)
	for _, f := range files {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageCheck, Status: driver.StatusDone})
	}
	vis := m.visible()
	if len(vis) != maxVisible || vis[len(vis)-1] != 29 {
		t.Fatalf("visible = %v", vis)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/driver/check.go", 10); got != "interna..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a.go", 10); got != "a.go" {
		t.Fatalf("truncate = %q", got)
	}
	for _, width := range []int{4, 10, 17} {
		if got := runewidth.StringWidth(truncate("internal/frontend/golang/golang.go", width)); got != width {
			t.Fatalf("truncate to %d gives width %d", width, got)
		}
	}
}
