package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	OK     bool   `yaml:"ok"              json:"ok"`
	Action string `yaml:"action"          json:"action"`
	Error  string `yaml:"error,omitempty" json:"error,omitempty"`
}

func capture(t *testing.T, format Format, pretty bool, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldF, oldP := Writer, OutputFormat, PrettyOutput
	Writer, OutputFormat, PrettyOutput = &buf, format, pretty
	defer func() { Writer, OutputFormat, PrettyOutput = oldW, oldF, oldP }()

	if err := Print(v); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	out := capture(t, FormatYAML, false, sample{OK: true, Action: "click"})
	if !strings.Contains(out, "ok: true") || !strings.Contains(out, "action: click") {
		t.Errorf("unexpected yaml output: %q", out)
	}
	if strings.Contains(out, "error") {
		t.Errorf("omitempty field leaked: %q", out)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := capture(t, FormatJSON, false, sample{OK: false, Action: "drag", Error: "boom"})
	want := `{"ok":false,"action":"drag","error":"boom"}` + "\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	out := capture(t, FormatJSON, true, sample{OK: true, Action: "key"})
	if !strings.Contains(out, "\n  \"ok\": true") {
		t.Errorf("expected indented json, got %q", out)
	}
}

func TestPrint_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	oldW, oldF := Writer, OutputFormat
	Writer, OutputFormat = &buf, Format("toml")
	defer func() { Writer, OutputFormat = oldW, oldF }()

	if err := Print(sample{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
