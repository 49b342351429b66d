package taskform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-taskform/pkg/selection"
)

func TestGenerateHTML(t *testing.T) {
	t.Parallel()

	state := selection.Default()
	state.Image = "apache/seatunnel:2.3.3"

	out, err := GenerateHTML(context.Background(), state)
	if err != nil {
		t.Fatalf("GenerateHTML returned error: %v", err)
	}
	if !strings.Contains(string(out), "apache/seatunnel:2.3.3") {
		t.Fatalf("expected image value in output:\n%s", out)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	t.Parallel()

	if _, err := Generate(context.Background(), selection.Default(), "pdf"); err == nil {
		t.Fatalf("expected unknown renderer to fail")
	}
}

func TestNewStateLoaderReadsFiles(t *testing.T) {
	t.Parallel()

	state, err := NewStateLoader(StateLoaderOptions{}).Load(context.Background(), SourceFor("pkg/testsupport/testdata/flink_custom.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if state.StartupScript != selection.LauncherFlink {
		t.Fatalf("unexpected launcher %q", state.StartupScript)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	t.Parallel()

	matches, err := fs.Glob(EmbeddedTemplates(), "templates/*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected embedded templates")
	}
}
