package page

// InternalLink is a derived, ephemeral view of a link from one page to
// another. It is never stored on a Descriptor.
type InternalLink struct {
	TargetID   string   `json:"targetId"`
	TargetPath string   `json:"targetPath"`
	Title      string   `json:"title"`
	Score      *float64 `json:"score,omitempty"`
	Anchor     string   `json:"anchor,omitempty"`
}

// LinkTo builds a link to d with an optional relevance score.
func LinkTo(d *Descriptor, score *float64) InternalLink {
	return InternalLink{
		TargetID:   d.ID,
		TargetPath: d.Path,
		Title:      d.Title,
		Score:      score,
	}
}

// AnchorText is the custom anchor when set, else the target title.
func (l InternalLink) AnchorText() string {
	if l.Anchor != "" {
		return l.Anchor
	}
	return l.Title
}
