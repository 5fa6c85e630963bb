package notify

import (
	"bytes"
	"os/exec"
	"strings"
)

// runCommand executes one external command and maps any spawn failure or
// non-zero exit to *NotifierError with the captured stderr as diagnostic.
// No retries; a hung helper stalls only the calling handler.
func runCommand(backend, bin string, args ...string) error {
	cmd := exec.Command(bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &NotifierError{
			Backend: backend,
			Detail:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}
