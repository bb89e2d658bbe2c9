package redux

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Action describes an intended state transition. Implementations are plain
// immutable data records; the discriminator returned by ActionType selects
// the transition and must be non-empty. Everything beyond the discriminator
// is payload the reducer interprets.
type Action interface {
	ActionType() string
}

// Reserved discriminator prefixes. The init action is dispatched once at
// store creation, the replace action on every ReplaceReducer call, and probe
// actions only by CombineReducers shape checks. The random suffix appended at
// process start keeps user actions from colliding with them by accident.
const (
	initTypePrefix    = "@@redux/INIT"
	replaceTypePrefix = "@@redux/REPLACE"
	probeTypePrefix   = "@@redux/PROBE_UNKNOWN_ACTION"
)

// reservedAction carries only its discriminator.
type reservedAction struct {
	typ string
}

func (a reservedAction) ActionType() string { return a.typ }

var (
	initAction    = reservedAction{typ: initTypePrefix + randomSuffix()}
	replaceAction = reservedAction{typ: replaceTypePrefix + randomSuffix()}
)

// probeAction mints a fresh unknown action for reducer shape checks. The type
// is fresh per call so a reducer cannot special-case it.
func probeAction() Action {
	return reservedAction{typ: probeTypePrefix + randomSuffix()}
}

// randomSuffix derives a short dot-separated fragment from a UUID,
// e.g. "9.f.3.c.a.0".
func randomSuffix() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.Join(strings.Split(raw, ""), ".")
}

// validateAction applies the runtime checks that survive the typed API.
// Actions arriving through untyped boundaries can still be nil interface
// values, nil pointers, or records with an empty discriminator.
func validateAction(action Action) error {
	if action == nil {
		return ErrInvalidAction
	}
	if v := reflect.ValueOf(action); v.Kind() == reflect.Pointer && v.IsNil() {
		return ErrInvalidAction
	}
	if action.ActionType() == "" {
		return ErrActionTypeEmpty
	}
	return nil
}
