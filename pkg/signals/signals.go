// Package signals derives the layout signals that drive the SeaTunnel task
// form. Every signal is a pure function of a selection.State: widths live on
// a 24 column grid where zero means the dependent field is hidden.
package signals

import (
	"strings"

	"github.com/goliatone/go-taskform/pkg/selection"
)

// Grid widths.
const (
	Hidden = 0
	Half   = 12
	Full   = 24
)

const (
	flinkMarker = "flink"
	sparkMarker = "spark"
)

// Name identifies a derived signal so descriptors can reference it instead of
// carrying a snapshot value.
type Name string

const (
	ConfigEditorSpan   Name = "configEditorSpan"
	ResourceEditorSpan Name = "resourceEditorSpan"
	FlinkSpan          Name = "flinkSpan"
	DeployModeSpan     Name = "deployModeSpan"
	MasterSpan         Name = "masterSpan"
	MasterURLSpan      Name = "masterUrlSpan"
	OthersSpan         Name = "othersSpan"
	ShowClient         Name = "showClient"
	ShowLocal          Name = "showLocal"
	UseCustom          Name = "useCustom"
)

// Signals is one consistent set of derived values for a state snapshot.
type Signals struct {
	ConfigEditorSpan   int  `json:"configEditorSpan"`
	ResourceEditorSpan int  `json:"resourceEditorSpan"`
	FlinkSpan          int  `json:"flinkSpan"`
	DeployModeSpan     int  `json:"deployModeSpan"`
	MasterSpan         int  `json:"masterSpan"`
	MasterURLSpan      int  `json:"masterUrlSpan"`
	OthersSpan         int  `json:"othersSpan"`
	ShowClient         bool `json:"showClient"`
	ShowLocal          bool `json:"showLocal"`
	UseCustom          bool `json:"useCustom"`
}

// Derive computes every signal from the state in a single pass.
func Derive(state selection.State) Signals {
	flink := IsFlink(state.StartupScript)
	spark := IsSpark(state.StartupScript)
	generic := IsGeneric(state.StartupScript)
	clustered := spark && state.DeployMode != selection.DeployModeLocal

	out := Signals{
		ConfigEditorSpan:   Hidden,
		ResourceEditorSpan: Full,
		ShowClient:         spark,
		ShowLocal:          generic,
		UseCustom:          state.UseCustom,
	}
	if state.UseCustom {
		out.ConfigEditorSpan = Full
		out.ResourceEditorSpan = Hidden
	}
	if flink {
		out.FlinkSpan = Full
	}
	if spark || generic {
		out.DeployModeSpan = Full
	}
	if clustered {
		out.MasterSpan = Half
		if state.Master == selection.MasterSpark || state.Master == selection.MasterMesos {
			out.MasterURLSpan = Half
		}
	}
	if flink || generic {
		out.OthersSpan = Full
	}
	return out
}

// IsFlink reports whether the launcher runs on Flink.
func IsFlink(startupScript string) bool {
	return strings.Contains(startupScript, flinkMarker)
}

// IsSpark reports whether the launcher runs on Spark.
func IsSpark(startupScript string) bool {
	return strings.Contains(startupScript, sparkMarker)
}

// IsGeneric reports whether the launcher is the engine-agnostic one.
func IsGeneric(startupScript string) bool {
	return startupScript == selection.LauncherGeneric
}

// Span resolves a width signal by name. Flags resolve to Full when set and
// unknown names to Hidden.
func (s Signals) Span(name Name) int {
	switch name {
	case ConfigEditorSpan:
		return s.ConfigEditorSpan
	case ResourceEditorSpan:
		return s.ResourceEditorSpan
	case FlinkSpan:
		return s.FlinkSpan
	case DeployModeSpan:
		return s.DeployModeSpan
	case MasterSpan:
		return s.MasterSpan
	case MasterURLSpan:
		return s.MasterURLSpan
	case OthersSpan:
		return s.OthersSpan
	case ShowClient, ShowLocal, UseCustom:
		if s.Flag(name) {
			return Full
		}
		return Hidden
	default:
		return Hidden
	}
}

// Flag resolves a boolean signal by name. Width signals are true when shown.
func (s Signals) Flag(name Name) bool {
	switch name {
	case ShowClient:
		return s.ShowClient
	case ShowLocal:
		return s.ShowLocal
	case UseCustom:
		return s.UseCustom
	default:
		return s.Span(name) > Hidden
	}
}
