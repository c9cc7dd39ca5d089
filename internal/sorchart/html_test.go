package sorchart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/banshee-data/sorparser/internal/sor"
)

func TestWriteHTMLRendersEventsSeries(t *testing.T) {
	rec := &sor.Record{
		Filename: "trace.sor",
		KeyEvents: &sor.KeyEvents{
			NumEvents: 2,
			Events: []sor.Event{
				{EventNumber: 1, DistanceM: 100, SpliceLossDB: 0.2, ReflectanceDB: -40},
				{EventNumber: 2, DistanceM: 5000, SpliceLossDB: 0.1, ReflectanceDB: -20},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "<html") {
		t.Errorf("expected an HTML document, got: %.200s", html)
	}
	if !strings.Contains(html, "trace.sor") {
		t.Errorf("expected the filename to appear in the chart title")
	}
}

func TestWriteHTMLErrorsWithoutKeyEvents(t *testing.T) {
	rec := &sor.Record{Filename: "empty.sor"}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, rec); err == nil {
		t.Fatal("expected an error for a record with no key events")
	}
}
