package middleware

import (
	"reflect"

	"github.com/Feel-Joy/redux"
)

// actionType tolerates nil and typed-nil actions so observability wrappers
// can report dispatches the store is about to reject.
func actionType(action redux.Action) string {
	if action == nil {
		return "<nil>"
	}
	if v := reflect.ValueOf(action); v.Kind() == reflect.Pointer && v.IsNil() {
		return "<nil>"
	}
	return action.ActionType()
}
