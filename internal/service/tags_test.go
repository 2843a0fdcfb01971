package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"  Dog Walking  ":      "dog walking",
		"pet_sitting":          "pet sitting",
		"baby-sitter":          "baby-sitter",
		"Cleaning!!":           "cleaning",
		"a   lot of    spaces": "a lot of spaces",
		"###":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTag(in), "input %q", in)
	}
}

func TestNormalizeTagsDedupesAndCaps(t *testing.T) {
	got := NormalizeTags([]string{"Dog Walking", "dog_walking", "", "pet care"})
	assert.Equal(t, []string{"dog walking", "pet care"}, got)

	var many []string
	for i := 0; i < domain.MaxCategoryTags+5; i++ {
		many = append(many, fmt.Sprintf("tag-%d", i))
	}
	assert.Len(t, NormalizeTags(many), domain.MaxCategoryTags)
}

func TestFallbackTagsFromName(t *testing.T) {
	got := FallbackTagsFromName("Household Maintenance and Repairs", domain.MaxCategoryTags)
	assert.Equal(t, []string{"household", "maintenance", "repairs"}, got)

	capped := FallbackTagsFromName("one two three four", 2)
	assert.Equal(t, []string{"one", "two"}, capped)
}
