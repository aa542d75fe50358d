package application

const (
	// Persistent store keys
	credentialsKey    = "geoguessr_ai_keys"
	reviewCachePrefix = "georeview"

	// Google AI Studio keys are always this long
	apiKeyLength = 39

	credentialSeparator = ","
)
