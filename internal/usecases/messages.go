package usecases

import "fmt"

// User-facing messages. Each failure class surfaces exactly one of these per
// invocation; causes behind msgGeneration are logged, never shown.
const (
	msgNoFileSelected = "No file is selected."
	msgGeneration     = "Unable to create a web link for this file."
	msgCopyFailed     = "Unable to copy the web link to the clipboard."
	msgOpenFailed     = "Unable to open the web link in the browser."
	msgLinkCopied     = "Web link copied to the clipboard."
)

// Titles of the actionable notification choices.
const (
	actionTitleOpenInBrowser = "Open in browser"
	actionTitleOpenSettings  = "Open settings"
)

func msgNotTracked(ref string) string {
	return fmt.Sprintf("%s is not tracked by Git.", ref)
}

func msgNoRemote(root string) string {
	return fmt.Sprintf("The repository at %s has no remote to link to.", root)
}

func msgNoHandler(remoteURL string) string {
	return fmt.Sprintf("No link handler recognizes the remote %s. Add a server entry to your settings to support it.", remoteURL)
}

func msgNoRemoteHead(root, remote string) string {
	return fmt.Sprintf("Unable to determine the default branch for remote %q of the repository at %s.", remote, root)
}
