package domain

// Attachment is a raw uploaded file handed to the intake pipeline. Image
// attachments are expected to arrive with OCR text already extracted.
type Attachment struct {
	Name          string         `json:"name"`
	Kind          AttachmentKind `json:"kind"`
	MimeType      string         `json:"mime_type"`
	SizeBytes     int64          `json:"size_bytes"`
	ExtractedText string         `json:"extracted_text,omitempty"`
}

// AttachmentSummary is the pre-processed view of an attachment that is
// included in model prompts and retained on the original input.
type AttachmentSummary struct {
	Name          string         `json:"name"`
	Kind          AttachmentKind `json:"kind"`
	MimeType      string         `json:"mime_type"`
	SizeBytes     int64          `json:"size_bytes"`
	ExtractedText string         `json:"extracted_text,omitempty"`
}

// OriginalInput is an immutable snapshot of the triggering turn. It is
// retained for audit and display even after the draft evolves across
// clarification turns.
type OriginalInput struct {
	Text            string              `json:"text,omitempty"`
	VoiceTranscript string              `json:"voice_transcript,omitempty"`
	Attachments     []AttachmentSummary `json:"attachments,omitempty"`
}

// CombinedText joins all textual content of the input for prompting and for
// the degraded note fallback. Voice transcripts take precedence over typed
// text when both are present.
func (in OriginalInput) CombinedText() string {
	if in.VoiceTranscript != "" {
		return in.VoiceTranscript
	}
	return in.Text
}

// IsEmpty reports whether the input carries no usable content.
func (in OriginalInput) IsEmpty() bool {
	if in.Text != "" || in.VoiceTranscript != "" {
		return false
	}
	for _, a := range in.Attachments {
		if a.ExtractedText != "" {
			return false
		}
	}
	return true
}
