// Package message computes the tiered result message shown after a submit.
package message

import "fmt"

// Tier thresholds for the congratulatory message, evaluated top-down.
const (
	impressiveMin = 35
	wellDoneMin   = 25
	notBadMin     = 15
)

// ForMadeShots returns the congratulatory message for a made-shot count.
// First matching tier wins.
func ForMadeShots(n int) string {
	switch {
	case n >= impressiveMin:
		return fmt.Sprintf("Impressive! You made %d shots. Keep it up!", n)
	case n >= wellDoneMin:
		return fmt.Sprintf("Well done! You made %d shots. Almost perfect!", n)
	case n >= notBadMin:
		return fmt.Sprintf("Not bad, you made %d shots. You'll improve with practice!", n)
	default:
		return fmt.Sprintf("You made %d shots. Don't be discouraged, keep practicing!", n)
	}
}

// Failure is the fixed generic message shown when a submit fails. Form
// fields are retained so the user can retry with the same input.
const Failure = "Something went wrong while saving your series. Please try again."

// MicrophoneDenied is shown when the recognizer reports a permission
// denial. All other recognition errors stay silent.
const MicrophoneDenied = "Microphone access was denied. Check your browser permissions."

// VoiceUnsupported is shown synchronously when the speech capability is
// absent; no async work is started.
const VoiceUnsupported = "Speech recognition is not available here."
