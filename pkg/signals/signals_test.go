package signals

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/selection"
)

func TestEditorSpansAreComplementary(t *testing.T) {
	t.Parallel()

	scripts := []string{selection.LauncherGeneric, selection.LauncherFlink, selection.LauncherSpark, "", "unknown.sh"}
	for _, script := range scripts {
		for _, useCustom := range []bool{true, false} {
			got := Derive(selection.State{StartupScript: script, UseCustom: useCustom})
			if got.ConfigEditorSpan+got.ResourceEditorSpan != Full {
				t.Fatalf("%s/%v: spans not complementary: %+v", script, useCustom, got)
			}
			if useCustom && got.ConfigEditorSpan != Full {
				t.Fatalf("%s: expected config editor shown, got %+v", script, got)
			}
			if !useCustom && got.ResourceEditorSpan != Full {
				t.Fatalf("%s: expected resource editor shown, got %+v", script, got)
			}
		}
	}
}

func TestFlinkLauncher(t *testing.T) {
	t.Parallel()

	for _, script := range []string{selection.LauncherFlink, "start-seatunnel-flink-13-connector-v2.sh", "flink"} {
		got := Derive(selection.State{StartupScript: script})
		if got.FlinkSpan != Full || got.OthersSpan != Full {
			t.Fatalf("%s: expected flink and others spans, got %+v", script, got)
		}
		if got.DeployModeSpan != Hidden || got.ShowClient || got.ShowLocal {
			t.Fatalf("%s: unexpected spark/generic signals, got %+v", script, got)
		}
	}
}

func TestGenericLauncher(t *testing.T) {
	t.Parallel()

	got := Derive(selection.State{StartupScript: selection.LauncherGeneric, DeployMode: selection.DeployModeLocal})
	want := Signals{
		ConfigEditorSpan:   Hidden,
		ResourceEditorSpan: Full,
		DeployModeSpan:     Full,
		OthersSpan:         Full,
		ShowLocal:          true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}
}

func TestSparkMasterSpans(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		deployMode string
		master     string
		masterSpan int
		urlSpan    int
	}{
		{name: "cluster yarn", deployMode: selection.DeployModeCluster, master: selection.MasterYarn, masterSpan: Half, urlSpan: Hidden},
		{name: "cluster spark", deployMode: selection.DeployModeCluster, master: selection.MasterSpark, masterSpan: Half, urlSpan: Half},
		{name: "client mesos", deployMode: selection.DeployModeClient, master: selection.MasterMesos, masterSpan: Half, urlSpan: Half},
		{name: "local spark", deployMode: selection.DeployModeLocal, master: selection.MasterSpark, masterSpan: Hidden, urlSpan: Hidden},
		{name: "local mesos", deployMode: selection.DeployModeLocal, master: selection.MasterMesos, masterSpan: Hidden, urlSpan: Hidden},
		{name: "empty deploy mode", deployMode: "", master: selection.MasterSpark, masterSpan: Half, urlSpan: Half},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Derive(selection.State{
				StartupScript: selection.LauncherSpark,
				DeployMode:    tc.deployMode,
				Master:        tc.master,
			})
			if got.MasterSpan != tc.masterSpan || got.MasterURLSpan != tc.urlSpan {
				t.Fatalf("expected master=%d url=%d, got %+v", tc.masterSpan, tc.urlSpan, got)
			}
			if !got.ShowClient || got.DeployModeSpan != Full {
				t.Fatalf("expected spark deploy mode signals, got %+v", got)
			}
		})
	}
}

func TestEndToEndSparkScenario(t *testing.T) {
	t.Parallel()

	got := Derive(selection.State{
		StartupScript: "spark-submit",
		DeployMode:    selection.DeployModeCluster,
		Master:        selection.MasterMesos,
		UseCustom:     false,
	})
	want := Signals{
		ConfigEditorSpan:   Hidden,
		ResourceEditorSpan: Full,
		FlinkSpan:          Hidden,
		DeployModeSpan:     Full,
		MasterSpan:         Half,
		MasterURLSpan:      Half,
		OthersSpan:         Hidden,
		ShowClient:         true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}
}

func TestUnrecognisedLauncherDegrades(t *testing.T) {
	t.Parallel()

	got := Derive(selection.State{StartupScript: "SEATUNNEL.SH", DeployMode: selection.DeployModeCluster, Master: selection.MasterSpark})
	if got.FlinkSpan|got.DeployModeSpan|got.MasterSpan|got.MasterURLSpan|got.OthersSpan != 0 {
		t.Fatalf("expected every launcher signal hidden, got %+v", got)
	}
	if got.ShowClient || got.ShowLocal {
		t.Fatalf("expected launcher flags unset, got %+v", got)
	}
}

func TestLookupByName(t *testing.T) {
	t.Parallel()

	sig := Derive(selection.State{StartupScript: selection.LauncherGeneric, UseCustom: true})

	if sig.Span(ConfigEditorSpan) != Full || sig.Span(ResourceEditorSpan) != Hidden {
		t.Fatalf("unexpected editor spans: %+v", sig)
	}
	if !sig.Flag(UseCustom) || !sig.Flag(ShowLocal) || sig.Flag(ShowClient) {
		t.Fatalf("unexpected flags: %+v", sig)
	}
	if sig.Span(UseCustom) != Full {
		t.Fatalf("expected flag to resolve as full width")
	}
	if sig.Span("missing") != Hidden || sig.Flag("missing") {
		t.Fatalf("expected unknown signal to resolve hidden")
	}
}
