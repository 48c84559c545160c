package provider

import (
	"strings"

	"idea2grow/model"
)

// ExtractCitations turns grounding metadata into a deduplicated citation
// list. Chunks without a web URI are skipped; a missing title becomes
// model.DefaultCitationTitle. When a URI repeats, the first occurrence keeps
// its position and title.
func ExtractCitations(meta *GroundingMetadata) []model.Citation {
	if meta == nil || len(meta.Chunks) == 0 {
		return nil
	}

	var citations []model.Citation
	seen := make(map[string]struct{}, len(meta.Chunks))
	for _, chunk := range meta.Chunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if _, dup := seen[chunk.Web.URI]; dup {
			continue
		}
		seen[chunk.Web.URI] = struct{}{}

		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = model.DefaultCitationTitle
		}
		citations = append(citations, model.Citation{Title: title, URI: chunk.Web.URI})
	}
	return citations
}
