package graphql

import (
	"github.com/peopleops/hr-management/internal"
)

// operationError carries an AppError across the GraphQL layer. It satisfies
// gqlerrors.ExtendedError, so the error kind and code end up in the
// response's extensions instead of being flattened into the message.
type operationError struct {
	app *internal.AppError
}

func (e *operationError) Error() string {
	return e.app.Message
}

func (e *operationError) Unwrap() error {
	return e.app
}

func (e *operationError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"kind": string(e.app.Type),
		"code": string(e.app.Code),
	}
	if e.app.Details != nil {
		ext["details"] = e.app.Details
	}
	return ext
}

// wrapError upgrades AppErrors so their classification survives GraphQL
// error formatting. Unknown errors pass through untouched.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if app, ok := internal.IsAppError(err); ok {
		return &operationError{app: app}
	}
	return err
}
