// Package selection holds the SeaTunnel task selection state: the values a
// user picked, their defaults, and the decoders that load them from JSON or
// YAML documents.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Launcher identifiers shipped with SeaTunnel. Only the generic launcher is
// matched exactly; engine launchers are recognised by substring.
const (
	LauncherGeneric = "seatunnel.sh"
	LauncherFlink   = "start-seatunnel-flink.sh"
	LauncherSpark   = "start-seatunnel-spark.sh"
)

// Deploy modes understood by the engines.
const (
	DeployModeLocal   = "local"
	DeployModeClient  = "client"
	DeployModeCluster = "cluster"
)

// Cluster resource manager types.
const (
	MasterYarn  = "YARN"
	MasterSpark = "SPARK"
	MasterMesos = "MESOS"
	MasterLocal = "LOCAL"
)

// ImagePullPolicyIfNotPresent is the pull policy applied when none is chosen.
const ImagePullPolicyIfNotPresent = "IfNotPresent"

// Field keys as used by descriptors bound to the state.
const (
	FieldStartupScript     = "startupScript"
	FieldDeployMode        = "deployMode"
	FieldMaster            = "master"
	FieldMasterURL         = "masterUrl"
	FieldUseCustom         = "useCustom"
	FieldNamespace         = "namespace"
	FieldImage             = "image"
	FieldImagePullPolicy   = "imagePullPolicy"
	FieldJobManagerMemory  = "jobManagerMemory"
	FieldTaskManagerMemory = "taskManagerMemory"
	FieldSlot              = "slot"
	FieldTaskManager       = "taskManager"
	FieldRawScript         = "rawScript"
	FieldResourceList      = "resourceList"
	FieldLocalParams       = "localParams"
	FieldOthers            = "others"
)

// ErrUnsupportedFormat is returned when a state document is neither JSON nor
// YAML.
var ErrUnsupportedFormat = errors.New("selection: unsupported format")

// Property is a single custom parameter attached to the task.
type Property struct {
	Prop   string `json:"prop" yaml:"prop"`
	Direct string `json:"direct,omitempty" yaml:"direct,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
}

// State holds the user's current selections for a SeaTunnel task form. The
// hosting form owns it; schema generation only reads it.
type State struct {
	StartupScript     string     `json:"startupScript" yaml:"startupScript"`
	DeployMode        string     `json:"deployMode,omitempty" yaml:"deployMode,omitempty"`
	Master            string     `json:"master,omitempty" yaml:"master,omitempty"`
	MasterURL         string     `json:"masterUrl,omitempty" yaml:"masterUrl,omitempty"`
	UseCustom         bool       `json:"useCustom" yaml:"useCustom"`
	Namespace         string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Image             string     `json:"image,omitempty" yaml:"image,omitempty"`
	ImagePullPolicy   string     `json:"imagePullPolicy,omitempty" yaml:"imagePullPolicy,omitempty"`
	JobManagerMemory  string     `json:"jobManagerMemory,omitempty" yaml:"jobManagerMemory,omitempty"`
	TaskManagerMemory string     `json:"taskManagerMemory,omitempty" yaml:"taskManagerMemory,omitempty"`
	Slot              *int       `json:"slot,omitempty" yaml:"slot,omitempty"`
	TaskManager       *int       `json:"taskManager,omitempty" yaml:"taskManager,omitempty"`
	RawScript         string     `json:"rawScript,omitempty" yaml:"rawScript,omitempty"`
	ResourceList      []int      `json:"resourceList,omitempty" yaml:"resourceList,omitempty"`
	LocalParams       []Property `json:"localParams,omitempty" yaml:"localParams,omitempty"`
	Others            string     `json:"others,omitempty" yaml:"others,omitempty"`
}

// Default returns the selections a freshly created SeaTunnel node starts with.
func Default() State {
	return State{
		StartupScript:   LauncherGeneric,
		DeployMode:      DeployModeClient,
		Master:          MasterYarn,
		UseCustom:       true,
		ImagePullPolicy: ImagePullPolicyIfNotPresent,
	}
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (s State) Clone() State {
	out := s
	if s.Slot != nil {
		v := *s.Slot
		out.Slot = &v
	}
	if s.TaskManager != nil {
		v := *s.TaskManager
		out.TaskManager = &v
	}
	if s.ResourceList != nil {
		out.ResourceList = append([]int(nil), s.ResourceList...)
	}
	if s.LocalParams != nil {
		out.LocalParams = append([]Property(nil), s.LocalParams...)
	}
	return out
}

// Values exposes the state keyed by descriptor field name. Unset optional
// numbers map to nil.
func (s State) Values() map[string]any {
	values := map[string]any{
		FieldStartupScript:     s.StartupScript,
		FieldDeployMode:        s.DeployMode,
		FieldMaster:            s.Master,
		FieldMasterURL:         s.MasterURL,
		FieldUseCustom:         s.UseCustom,
		FieldNamespace:         s.Namespace,
		FieldImage:             s.Image,
		FieldImagePullPolicy:   s.ImagePullPolicy,
		FieldJobManagerMemory:  s.JobManagerMemory,
		FieldTaskManagerMemory: s.TaskManagerMemory,
		FieldSlot:              nil,
		FieldTaskManager:       nil,
		FieldRawScript:         s.RawScript,
		FieldResourceList:      append([]int(nil), s.ResourceList...),
		FieldLocalParams:       append([]Property(nil), s.LocalParams...),
		FieldOthers:            s.Others,
	}
	if s.Slot != nil {
		values[FieldSlot] = *s.Slot
	}
	if s.TaskManager != nil {
		values[FieldTaskManager] = *s.TaskManager
	}
	return values
}

// Parse decodes a JSON or YAML document on top of Default().
func Parse(data []byte, format string) (State, error) {
	state := Default()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		if err := json.Unmarshal(data, &state); err != nil {
			return State{}, fmt.Errorf("selection: decode json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &state); err != nil {
			return State{}, fmt.Errorf("selection: decode yaml: %w", err)
		}
	default:
		return State{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return state, nil
}

// Load reads a state document from disk, picking the decoder from the file
// extension.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("selection: read %s: %w", path, err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	return Parse(data, format)
}
