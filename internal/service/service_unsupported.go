//go:build !darwin && !linux

package service

import (
	"context"
	"errors"
	"io"
)

var errUnsupported = errors.New("service management is not supported on this platform")

// Installed reports false; there is no service manager integration here.
func Installed() bool { return false }

type unsupportedManager struct{}

func newManager(_ io.Writer) Manager { return unsupportedManager{} }

func (unsupportedManager) Install(context.Context) error   { return errUnsupported }
func (unsupportedManager) Uninstall(context.Context) error { return errUnsupported }
func (unsupportedManager) Start(context.Context) error     { return errUnsupported }
func (unsupportedManager) Stop(context.Context) error      { return errUnsupported }
func (unsupportedManager) Status(context.Context) error    { return errUnsupported }
