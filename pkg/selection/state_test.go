package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	state, err := Parse([]byte(`{"startupScript":"start-seatunnel-spark.sh","deployMode":"cluster","master":"MESOS","useCustom":false}`), "json")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := State{
		StartupScript:   LauncherSpark,
		DeployMode:      DeployModeCluster,
		Master:          MasterMesos,
		UseCustom:       false,
		ImagePullPolicy: ImagePullPolicyIfNotPresent,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc := []byte(`
startupScript: start-seatunnel-flink.sh
useCustom: false
slot: 2
resourceList: [7]
localParams:
  - prop: dt
    value: "2024-01-01"
`)
	state, err := Parse(doc, "yml")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if state.StartupScript != LauncherFlink {
		t.Fatalf("unexpected startup script %q", state.StartupScript)
	}
	if state.Slot == nil || *state.Slot != 2 {
		t.Fatalf("expected slot 2, got %v", state.Slot)
	}
	if diff := cmp.Diff([]Property{{Prop: "dt", Value: "2024-01-01"}}, state.LocalParams); diff != "" {
		t.Fatalf("local params mismatch (-want +got):\n%s", diff)
	}
	if state.DeployMode != DeployModeClient {
		t.Fatalf("expected default deploy mode to survive, got %q", state.DeployMode)
	}
}

func TestParseRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`startupScript = "x"`), "toml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadPicksDecoderFromExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("image: apache/seatunnel:2.3.3\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if state.Image != "apache/seatunnel:2.3.3" {
		t.Fatalf("unexpected image %q", state.Image)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	slot := 3
	original := State{Slot: &slot, ResourceList: []int{1}}
	clone := original.Clone()

	*clone.Slot = 9
	clone.ResourceList[0] = 42

	if *original.Slot != 3 || original.ResourceList[0] != 1 {
		t.Fatalf("clone shares memory with original: %+v", original)
	}
}

func TestSetCoercesText(t *testing.T) {
	t.Parallel()

	var state State
	steps := []struct {
		field string
		value any
	}{
		{FieldUseCustom, "true"},
		{FieldSlot, "4"},
		{FieldResourceList, "3, 5"},
		{FieldImage, "repo/image"},
	}
	for _, step := range steps {
		if err := state.Set(step.field, step.value); err != nil {
			t.Fatalf("Set(%s) returned error: %v", step.field, err)
		}
	}

	if !state.UseCustom {
		t.Fatalf("expected useCustom to be true")
	}
	if state.Slot == nil || *state.Slot != 4 {
		t.Fatalf("expected slot 4, got %v", state.Slot)
	}
	if diff := cmp.Diff([]int{3, 5}, state.ResourceList); diff != "" {
		t.Fatalf("resource list mismatch (-want +got):\n%s", diff)
	}

	if err := state.Set("nope", "x"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if err := state.Set(FieldSlot, "many"); err == nil {
		t.Fatalf("expected error for non-numeric slot")
	}
}

func TestSetRejectsFractionalNumbers(t *testing.T) {
	t.Parallel()

	var state State
	if err := state.Set(FieldSlot, 3.0); err != nil {
		t.Fatalf("expected integral float to be accepted, got %v", err)
	}
	if state.Slot == nil || *state.Slot != 3 {
		t.Fatalf("expected slot 3, got %v", state.Slot)
	}
	if err := state.Set(FieldSlot, 1.5); err == nil {
		t.Fatalf("expected error for fractional slot")
	}
	if *state.Slot != 3 {
		t.Fatalf("expected rejected value to leave slot unchanged, got %d", *state.Slot)
	}
}

func TestValuesExposesOptionalNumbers(t *testing.T) {
	t.Parallel()

	values := Default().Values()
	if values[FieldSlot] != nil {
		t.Fatalf("expected nil slot, got %v", values[FieldSlot])
	}

	n := 2
	values = State{TaskManager: &n}.Values()
	if values[FieldTaskManager] != 2 {
		t.Fatalf("expected task manager 2, got %v", values[FieldTaskManager])
	}
}
