package hookio

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Continue("all good")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"ok":true`) || !strings.Contains(out, `"result":"continue"`) {
		t.Errorf("unexpected output: %s", out)
	}
	if strings.Contains(out, "reason") {
		t.Errorf("empty reason should be omitted: %s", out)
	}

	buf.Reset()
	if err := Write(&buf, Block("conflicts found")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, `"result":"block"`) || !strings.Contains(out, `"reason":"conflicts found"`) {
		t.Errorf("unexpected output: %s", out)
	}
	if strings.Contains(out, "message") {
		t.Errorf("empty message should be omitted: %s", out)
	}
}

func TestExitCodes(t *testing.T) {
	if code := Continue("ok").ExitCode(); code != 0 {
		t.Errorf("continue exit code = %d, want 0", code)
	}
	if code := Block("no").ExitCode(); code != 1 {
		t.Errorf("block exit code = %d, want 1", code)
	}
}

func TestReadInput(t *testing.T) {
	payload := ReadInput(strings.NewReader(`{"tool":"Write","path":"specs/plan.md"}`))
	if payload["tool"] != "Write" {
		t.Errorf("payload = %v", payload)
	}

	for _, bad := range []string{"", "not json", "null"} {
		if payload := ReadInput(strings.NewReader(bad)); payload == nil || len(payload) != 0 {
			t.Errorf("ReadInput(%q) should yield an empty map, got %v", bad, payload)
		}
	}
}
