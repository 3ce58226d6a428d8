//go:build !windows && !darwin && !linux

package native

var platformBackend Backend = &termBackend{}

// termBackend services platforms without a native dialog binding by
// prompting on the controlling terminal.
type termBackend struct{}

func (t *termBackend) PickFile(_ Owner, opts FileOptions) (string, error) {
	return termPickFile(opts)
}

func (t *termBackend) Announce(_ Owner, opts MessageOptions) error {
	return termAnnounce(opts)
}
