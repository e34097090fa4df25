package utils_test

import (
	"testing"

	"gig-calendar/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "The Empty Bottle", "the-empty-bottle"},
		{"Punctuation", "Slim's / Great American", "slim-s-great-american"},
		{"Apostrophe", "Schubas Tavern & Lincoln Hall", "schubas-tavern-lincoln-hall"},
		{"Digits", "7th St Entry", "7th-st-entry"},
		{"LeadingTrailingJunk", "  ...Thalia Hall!  ", "thalia-hall"},
		{"Empty", "", ""},
		{"OnlyJunk", "&&&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.Slugify(tt.input))
		})
	}
}
