// Package envelope bridges JSON wire actions and the typed Action interface.
//
// Actions arriving from outside the process (HTTP bodies, queue messages,
// websocket frames) are untyped JSON documents. Parse enforces the wire
// contract, a JSON object with a non-empty string "type", and returns an
// Envelope that dispatches like any other action. Handlers that care about
// the payload decode it into their own struct, with `validate` tags applied
// on the way in.
//
// # Usage
//
//	e, err := envelope.Parse(body)
//	if err != nil {
//	    return err
//	}
//	if _, err := store.Dispatch(e); err != nil {
//	    return err
//	}
//
// Inside a reducer or middleware:
//
//	var cmd AddTodo
//	if err := e.Decode(&cmd); err != nil {
//	    return state
//	}
package envelope
