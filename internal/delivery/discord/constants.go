package discord

const (
	// Discord message limits
	maxEmbedsPerMessage = 10
	maxEmbedChars       = 6000
	maxMessageLength    = 2000

	// Per-embed budgets, chosen so a full round stays under maxEmbedChars
	titleLimit       = 256
	descriptionLimit = 1500
	fieldLimit       = 1024
	regionLimit      = 256
	tipTitleLimit    = 100
	tipBodyLimit     = 400
	maxTipsShown     = 5

	// Embed colors
	colorGreen = 0x2ECC71 // Review
	colorBlue  = 0x3498DB // Status
	colorRed   = 0xE74C3C // Failure

	exportFilePattern = "review_%s.xlsx"
)
