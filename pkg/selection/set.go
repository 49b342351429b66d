package selection

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Set assigns a value to the field bound to the given key. String input is
// coerced for boolean and numeric fields so callers driving the state from
// text sources (query strings, prompts) do not need per-field parsing.
func (s *State) Set(field string, value any) error {
	switch field {
	case FieldStartupScript:
		return setString(&s.StartupScript, field, value)
	case FieldDeployMode:
		return setString(&s.DeployMode, field, value)
	case FieldMaster:
		return setString(&s.Master, field, value)
	case FieldMasterURL:
		return setString(&s.MasterURL, field, value)
	case FieldNamespace:
		return setString(&s.Namespace, field, value)
	case FieldImage:
		return setString(&s.Image, field, value)
	case FieldImagePullPolicy:
		return setString(&s.ImagePullPolicy, field, value)
	case FieldJobManagerMemory:
		return setString(&s.JobManagerMemory, field, value)
	case FieldTaskManagerMemory:
		return setString(&s.TaskManagerMemory, field, value)
	case FieldRawScript:
		return setString(&s.RawScript, field, value)
	case FieldOthers:
		return setString(&s.Others, field, value)
	case FieldUseCustom:
		b, err := toBool(value)
		if err != nil {
			return fmt.Errorf("selection: set %s: %w", field, err)
		}
		s.UseCustom = b
		return nil
	case FieldSlot:
		return setOptionalInt(&s.Slot, field, value)
	case FieldTaskManager:
		return setOptionalInt(&s.TaskManager, field, value)
	case FieldResourceList:
		ids, err := toInts(value)
		if err != nil {
			return fmt.Errorf("selection: set %s: %w", field, err)
		}
		s.ResourceList = ids
		return nil
	case FieldLocalParams:
		params, ok := value.([]Property)
		if !ok {
			return fmt.Errorf("selection: set %s: expected []Property, got %T", field, value)
		}
		s.LocalParams = append([]Property(nil), params...)
		return nil
	default:
		return fmt.Errorf("selection: unknown field %q", field)
	}
}

func setString(target *string, field string, value any) error {
	switch v := value.(type) {
	case string:
		*target = v
	case fmt.Stringer:
		*target = v.String()
	case nil:
		*target = ""
	default:
		return fmt.Errorf("selection: set %s: expected string, got %T", field, value)
	}
	return nil
}

func setOptionalInt(target **int, field string, value any) error {
	switch v := value.(type) {
	case nil:
		*target = nil
	case int:
		n := v
		*target = &n
	case int64:
		n := int(v)
		*target = &n
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return fmt.Errorf("selection: set %s: %v is not an integer", field, v)
		}
		n := int(v)
		*target = &n
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			*target = nil
			return nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("selection: set %s: %w", field, err)
		}
		*target = &n
	default:
		return fmt.Errorf("selection: set %s: expected integer, got %T", field, value)
	}
	return nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("expected boolean, got %T", value)
	}
}

func toInts(value any) ([]int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []int:
		return append([]int(nil), v...), nil
	case int:
		return []int{v}, nil
	case string:
		var out []int
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected integer list, got %T", value)
	}
}
