package hook

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Interface is a try/catch/finally triple. Finally runs on every path,
// panics inside Try included.
type Interface interface {
	Try() error
	Catch(err error) error
	Finally() error
}

// Funcs adapts plain functions to Interface. Nil fields are no-ops; a nil
// CatchFunc returns the error unchanged.
type Funcs struct {
	TryFunc     func() error
	CatchFunc   func(err error) error
	FinallyFunc func() error
}

func (f Funcs) Try() error {
	if f.TryFunc == nil {
		return nil
	}
	return f.TryFunc()
}

func (f Funcs) Catch(err error) error {
	if f.CatchFunc == nil {
		return err
	}
	return f.CatchFunc(err)
}

func (f Funcs) Finally() error {
	if f.FinallyFunc == nil {
		return nil
	}
	return f.FinallyFunc()
}

// Call runs hook.Try, hands a failure to hook.Catch and always runs
// hook.Finally. A Finally error is appended to the error Call returns.
func Call(hook Interface) (err error) {
	if hook == nil {
		return fmt.Errorf("hook cannot be nil")
	}

	defer func() {
		if finErr := hook.Finally(); finErr != nil {
			if err == nil {
				err = finErr
			} else {
				err = multierror.Append(err, finErr)
			}
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during hook execution: %v", r)
		}
	}()

	tryErr := hook.Try()
	if tryErr != nil {
		err = hook.Catch(tryErr)
		return err
	}

	return nil
}
