package store

import (
	"strings"

	"github.com/samber/lo"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

// NormalizeTags trims every tag and drops empty ones, keeping order.
// Normalizing an already normalized list returns the same list.
func NormalizeTags(tags model.TagInput) []string {
	trimmed := lo.Map(tags.Parts(), func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	})
	return lo.Compact(trimmed)
}
