package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"idea2grow/model"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		meta *GroundingMetadata
		want []model.Citation
	}{
		{
			name: "nil metadata",
			meta: nil,
			want: nil,
		},
		{
			name: "no chunks",
			meta: &GroundingMetadata{},
			want: nil,
		},
		{
			name: "non-web chunk",
			meta: &GroundingMetadata{Chunks: []GroundingChunk{{Web: nil}}},
			want: nil,
		},
		{
			name: "dedup first seen, drop empty uri, default title",
			meta: &GroundingMetadata{Chunks: []GroundingChunk{
				{Web: &WebSource{URI: "a", Title: "A"}},
				{Web: &WebSource{URI: "a", Title: "A2"}},
				{Web: &WebSource{URI: "", Title: "B"}},
				{Web: &WebSource{URI: "c", Title: ""}},
			}},
			want: []model.Citation{
				{Title: "A", URI: "a"},
				{Title: "Source", URI: "c"},
			},
		},
		{
			name: "order preserved",
			meta: &GroundingMetadata{Chunks: []GroundingChunk{
				{Web: &WebSource{URI: "z", Title: "Z"}},
				{Web: &WebSource{URI: "y", Title: "Y"}},
				{Web: &WebSource{URI: "z", Title: "Z again"}},
			}},
			want: []model.Citation{
				{Title: "Z", URI: "z"},
				{Title: "Y", URI: "y"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCitations(tt.meta))
		})
	}
}
