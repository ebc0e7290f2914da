package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := Init("debug", "json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.WithField("feature", "compose").Debug("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if line["message"] != "hello" || line["service"] != "communication-hub" || line["feature"] != "compose" {
		t.Errorf("unexpected entry %v", line)
	}
}

func TestInitBadLevel(t *testing.T) {
	if _, err := Init("loud", "text", nil); err == nil {
		t.Fatal("expected error")
	}
}
