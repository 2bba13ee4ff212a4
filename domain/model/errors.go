package model

import "errors"

var (
	ErrComputeNotFound           = errors.New("compute target not found")
	ErrComputeInvalid            = errors.New("compute target invalid")
	ErrComputeKindMismatch       = errors.New("compute target kind mismatch")
	ErrComputeProvisioningFailed = errors.New("compute target provisioning failed")
	ErrWorkspaceInvalid          = errors.New("workspace invalid")
)
