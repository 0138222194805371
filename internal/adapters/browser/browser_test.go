package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLauncher records launch attempts and fails a configured number of
// times before succeeding.
type recordingLauncher struct {
	failures int
	errs     []error
	urls     []string
}

func (l *recordingLauncher) launch(url string) error {
	l.urls = append(l.urls, url)
	if len(l.urls) <= l.failures {
		err := errors.New("launch failed")
		l.errs = append(l.errs, err)
		return err
	}
	return nil
}

func TestOpener_Open_FirstAttemptSucceeds(t *testing.T) {
	// Arrange
	launcher := &recordingLauncher{}
	opener := NewOpenerWithLauncher(launcher.launch)

	// Act
	err := opener.Open(context.Background(), "https://github.com/acme/widgets/blob/main/main.go#L10")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/acme/widgets/blob/main/main.go#L10"}, launcher.urls)
}

func TestOpener_Open_RetriesWithReencodedURL(t *testing.T) {
	// Arrange
	launcher := &recordingLauncher{failures: 1}
	opener := NewOpenerWithLauncher(launcher.launch)
	raw := "https://github.com/acme/widgets/blob/main/docs/getting started.md"

	// Act
	err := opener.Open(context.Background(), raw)

	// Assert
	require.NoError(t, err)
	require.Len(t, launcher.urls, 2)
	assert.Equal(t, raw, launcher.urls[0])
	assert.Equal(t, "https://github.com/acme/widgets/blob/main/docs/getting%20started.md", launcher.urls[1])
}

func TestOpener_Open_BothAttemptsFailReturnsFirstError(t *testing.T) {
	// Arrange
	launcher := &recordingLauncher{failures: 2}
	opener := NewOpenerWithLauncher(launcher.launch)

	// Act
	err := opener.Open(context.Background(), "https://github.com/acme/widgets")

	// Assert
	require.Error(t, err)
	require.Len(t, launcher.urls, 2)
	assert.Same(t, launcher.errs[0], err)
}

func TestOpener_Open_UnparseableURLFailsWithFirstError(t *testing.T) {
	// Arrange
	launcher := &recordingLauncher{failures: 1}
	opener := NewOpenerWithLauncher(launcher.launch)

	// Act
	err := opener.Open(context.Background(), "https://github.com/%zz")

	// Assert
	require.Error(t, err)
	assert.Len(t, launcher.urls, 1)
	assert.Same(t, launcher.errs[0], err)
}
