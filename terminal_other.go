//go:build !unix

package tui

// NotifyResize is unavailable here; the runtime polls instead.
func (t *ProcessTerminal) NotifyResize() (<-chan struct{}, func()) {
	return nil, func() {}
}
