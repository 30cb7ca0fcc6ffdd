package pptx

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// SlideTexts reads a .pptx file and returns the non-empty paragraph texts of each slide
func SlideTexts(path string) ([][]string, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pptx file: %w", err)
	}

	slides := pres.GetAllSlides()
	texts := make([][]string, 0, len(slides))
	for _, slide := range slides {
		var lines []string
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				var text string
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						text += run.GetText()
					}
				}
				if text = strings.TrimSpace(text); text != "" {
					lines = append(lines, text)
				}
			}
		}
		texts = append(texts, lines)
	}

	return texts, nil
}
