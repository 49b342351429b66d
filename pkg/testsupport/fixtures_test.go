package testsupport

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/selection"
)

func TestMustLoadStateFixtures(t *testing.T) {
	t.Parallel()

	spark := MustLoadState(t, filepath.Join("testdata", "spark_cluster_mesos.yaml"))
	if spark.Master != selection.MasterMesos || spark.UseCustom {
		t.Fatalf("unexpected spark fixture %+v", spark)
	}
	if diff := cmp.Diff([]int{7}, spark.ResourceList); diff != "" {
		t.Fatalf("resource list mismatch (-want +got):\n%s", diff)
	}

	flink := MustLoadState(t, filepath.Join("testdata", "flink_custom.json"))
	if flink.Slot == nil || *flink.Slot != 2 || len(flink.LocalParams) != 1 {
		t.Fatalf("unexpected flink fixture %+v", flink)
	}

	if _, err := LoadState(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	fields := []model.Descriptor{
		{Field: "image"},
		{Type: model.FieldTypeCustomParameters},
	}
	if diff := cmp.Diff([]string{"image", "custom-parameters"}, FieldNames(fields)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := FindDescriptor(t, fields, "image"); got.Field != "image" {
		t.Fatalf("unexpected descriptor %+v", got)
	}
}

func TestCaptureOutput(t *testing.T) {
	t.Parallel()

	got := CaptureOutput(t, func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	})
	if got != "ok" {
		t.Fatalf("unexpected output %q", got)
	}
}
