package types

// Pure JSON contract for content bodies. Not a DB model: ContentItem.Body
// and AdaptedContent.Body hold the serialized form, decoded at the boundary
// and never manipulated as raw text.

type ContentBody struct {
	Sections []ContentSection `json:"sections"`
}

type ContentSection struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	MediaURL     string   `json:"media_url,omitempty"`
	LearningTips []string `json:"learning_tips,omitempty"`
}
