package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsTaskAndOperation(t *testing.T) {
	buf := captureLog(t)

	ctx := WithTask(context.Background(), "cities.csv")
	var err error
	Time(ctx, "solve")(&err)

	out := buf.String()
	if !strings.Contains(out, "task=cities.csv op=solve dur=") {
		t.Fatalf("log line = %q, want task and op fields", out)
	}
	if strings.Contains(out, "err=") {
		t.Fatalf("log line = %q, want no err field", out)
	}
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLog(t)

	err := errors.New("boom")
	Time(context.Background(), "load")(&err)

	if out := buf.String(); !strings.Contains(out, "op=load") || !strings.Contains(out, "err=boom") {
		t.Fatalf("log line = %q, want op and err fields", out)
	}
}
