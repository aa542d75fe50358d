package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"georeview/internal/models"
)

// DescribeError maps a pipeline failure to the message shown to the user.
func DescribeError(err error) string {
	switch {
	case errors.Is(err, models.ErrConfigurationMissing):
		return "No Gemini API keys are configured. An admin needs to run /setup with a comma separated list of keys."
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Those keys were rejected: " + err.Error()
	case errors.Is(err, models.ErrGenerationInProgress):
		return "A review is still generating. Try again once it finishes."
	case errors.Is(err, models.ErrGenerationExhausted):
		return "Error generating review. Please check your API keys."
	case errors.Is(err, models.ErrMatchNotFound):
		return "Match not found. Check the id and that the duel has finished."
	case errors.Is(err, ErrSharingDisabled):
		return "Sharing is not configured. Set GOOGLE_CREDENTIALS_FILE to enable it."
	case errors.Is(err, ErrNotReviewed):
		return "That match has not been reviewed yet. Run /review first."
	case errors.Is(err, models.ErrDataIntegrity):
		return "The match data is not usable for a review."
	default:
		return "Something went wrong: " + err.Error()
	}
}

// DescribeState renders the coordinator state for status commands.
func DescribeState(st RequestState) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status: %s", st.Phase))
	if st.Phase == PhaseIdle {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\nMatch: %s\nRun: %s\nStarted: %s", st.MatchID, st.RunID, st.StartedAt.Format("2006-01-02 15:04:05")))
	if st.Phase != PhaseInFlight {
		sb.WriteString(fmt.Sprintf("\nTook: %s", st.UpdatedAt.Sub(st.StartedAt).Round(time.Second)))
	}
	if len(st.Attempts) > 0 {
		sb.WriteString("\nAttempts: " + summarizeAttempts(st.Attempts))
	}
	if st.Err != nil {
		sb.WriteString("\nError: " + DescribeError(st.Err))
	}
	return sb.String()
}
