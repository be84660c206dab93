package service

import (
	"github.com/sangkips/galleauto-billing/pkg/apperror"
)

// wrapInfra passes application errors through and reports anything else as
// an infrastructure failure.
func wrapInfra(message string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInfrastructureError(message, err)
}
