package clipboard

import (
	"errors"
	"testing"

	"github.com/temirov/blueprint/internal/types"
)

func TestServiceCopy(t *testing.T) {
	backendError := errors.New("exec: xclip: not found")
	testCases := []struct {
		name          string
		unsupported   bool
		writeError    error
		expectWritten bool
		expectedError error
	}{
		{name: "copies_text", expectWritten: true},
		{name: "reports_missing_backend", unsupported: true, expectedError: ErrClipboardUnavailable},
		{name: "wraps_write_failure", writeError: backendError, expectWritten: true, expectedError: backendError},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var written string
			service := &Service{
				write: func(text string) error {
					written = text
					return testCase.writeError
				},
				unsupported: func() bool { return testCase.unsupported },
			}
			copyError := service.Copy("root/")
			if testCase.expectedError == nil {
				if copyError != nil {
					t.Fatalf("unexpected error: %v", copyError)
				}
			} else {
				if !errors.Is(copyError, testCase.expectedError) || !errors.Is(copyError, types.ErrClipboard) {
					t.Fatalf("expected %v wrapped in ErrClipboard, got %v", testCase.expectedError, copyError)
				}
			}
			if testCase.expectWritten != (written == "root/") {
				t.Fatalf("expected written=%t, got %q", testCase.expectWritten, written)
			}
		})
	}
}
