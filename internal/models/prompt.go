package models

// ImageMIMEType is the media type of every view sent to the model.
const ImageMIMEType = "image/jpeg"

// PromptPayload is an ordered list of parts. Order carries meaning: the
// images that follow a round marker belong to that round.
type PromptPayload struct {
	Parts []PromptPart
}

// PromptPart is either a text segment or an image.
type PromptPart struct {
	Text  string
	Image *Image
}

type Image struct {
	View     string
	MIMEType string
	Data     []byte
}

func (p *PromptPayload) AddText(text string) {
	p.Parts = append(p.Parts, PromptPart{Text: text})
}

func (p *PromptPayload) AddImage(img Image) {
	p.Parts = append(p.Parts, PromptPart{Image: &img})
}

// ImageCount returns the number of image parts.
func (p PromptPayload) ImageCount() int {
	n := 0
	for _, part := range p.Parts {
		if part.Image != nil {
			n++
		}
	}
	return n
}
