package intake

import (
	"fmt"

	"github.com/dmarovic/inflow/internal/domain"
)

// Summarize converts a raw attachment into the summary form included in
// model prompts. Images are expected to arrive with OCR text already
// extracted; PDFs and audio pass through with a placeholder note when no
// extraction is available.
func Summarize(att domain.Attachment) domain.AttachmentSummary {
	sum := domain.AttachmentSummary{
		Name:          att.Name,
		Kind:          att.Kind,
		MimeType:      att.MimeType,
		SizeBytes:     att.SizeBytes,
		ExtractedText: att.ExtractedText,
	}
	if sum.ExtractedText == "" {
		switch att.Kind {
		case domain.AttachmentPDF:
			sum.ExtractedText = fmt.Sprintf("[PDF attachment %q, text extraction unavailable]", att.Name)
		case domain.AttachmentAudio:
			sum.ExtractedText = fmt.Sprintf("[audio attachment %q, transcription unavailable]", att.Name)
		}
	}
	return sum
}

// SummarizeAll summarizes each attachment in order.
func SummarizeAll(atts []domain.Attachment) []domain.AttachmentSummary {
	if len(atts) == 0 {
		return nil
	}
	out := make([]domain.AttachmentSummary, 0, len(atts))
	for _, a := range atts {
		out = append(out, Summarize(a))
	}
	return out
}
