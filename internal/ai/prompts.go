package ai

import "fmt"

const (
	// AI Model configuration
	geminiModel      = "gemini-3-flash-preview"
	responseMIMEType = "application/json"
)

// Per-round image descriptions. The order must match the view order the
// image fetcher produces.
const (
	narrowFieldImages = "2 images (slightly left, slightly right, they overlap in the centre)"
	standardImages    = "6 images (front, right, back, left, up, bottom)"
)

// InstructionParams parameterizes the review instruction block.
type InstructionParams struct {
	RoundCount  int
	Mode        string
	MapName     string
	NarrowField bool
	// Data is the serialized round summary sequence.
	Data string
}

// ImageDescription tells the model how many images each round carries and
// what they show.
func ImageDescription(narrow bool) string {
	if narrow {
		return narrowFieldImages
	}
	return standardImages
}

// RoundMarker introduces the images of round n.
func RoundMarker(n int) string {
	return fmt.Sprintf("--- Visuals for Round %d ---", n)
}

// ReviewInstructions renders the instruction block that opens every request.
func ReviewInstructions(p InstructionParams) string {
	return fmt.Sprintf(reviewPrompt, p.RoundCount, p.Mode, p.MapName, ImageDescription(p.NarrowField), p.Data)
}

const reviewPrompt = `You are an elite GeoGuessr Coach and World Cup analyst.
Analyze these %d rounds from a %s match on the map "%s".

CRITICAL CONSTRAINTS:
1. Tone: Professional, encouraging, and insightful. Avoid being rude. Always refer to the opponent in third person and to the player in second person, you are not part of the game.
2. Technicality: Focus on "GeoGuessr Meta" (copyright, camera generations, car colors, bollards, utility poles) and "Env-Guessing" (soil, flora, road markings).
3. Tip: Provide 5 distinct tips for every round, based on what you can see from the images and on general knowledge. If my guess is in the wrong country, focus on how to get that country right. If the country is right, focus more on region guessing.
4. Regions: Use descriptive geographic regions (e.g., "The Pampas," "The Po Valley," "Appalachian Foothills", "Mojave Desert") rather than just state/province names.
5. Output Format: Return EXACTLY ONE raw JSON array with exactly one entry per round. Do not repeat the output. Do not include any text before or after the array.
6. Termination: End the response immediately after the final ']' bracket of the array.
7. For each round, you are given %s. Use them to provide more accurate tips based on what I actually saw during the round.
8. When describing what you can see in the images, avoid numbering. Use the names given in point 7: all the images follow the order stated there. Do not mention that you have multiple images. Treat them as one big image, so say "on the left we can see", "looking at the bottom" and so on.

STRUCTURE:
[
  {
    "round": number,
    "actualRegion": "Physiographic region name",
    "myGuessRegion": "Region name (distance in km)",
    "opponentGuessRegion": "Region name (distance in km)",
    "generalReview": "A balanced summary of the round. Acknowledge what led both players to their guesses, and explain the key differences between the player's guess and the actual location.",
    "locationReview": "A technical breakdown of the specific landscape. Mention things like copyright, coverage generation, meta cars, specific vegetation (e.g., Larch trees vs. Pines), or road line styles that confirm the exact location.",
    "tips": [
      {
        "title": "Specific Meta/Clue",
        "body": "A specific, actionable piece of advice based on the clues present in this round."
      }
    ]
  }
]

DATA: %s`
