package cache

import (
	"strings"
	"testing"
)

func TestGenerateCacheKey(t *testing.T) {
	base := GenerateCacheKey("internships", []string{"Python", "Data Analysis"})

	tests := []struct {
		name   string
		scope  string
		skills []string
		same   bool
	}{
		{"reordered", "internships", []string{"Data Analysis", "Python"}, true},
		{"case and spacing", "internships", []string{"python", "data   ANALYSIS"}, true},
		{"different scope", "students", []string{"Python", "Data Analysis"}, false},
		{"extra skill", "internships", []string{"Python", "Data Analysis", "SQL"}, false},
		{"duplicate skill", "internships", []string{"Python", "Python", "Data Analysis"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.scope, tt.skills)
			if (got == base) != tt.same {
				t.Errorf("key equality = %v, want %v", got == base, tt.same)
			}
			if !strings.HasPrefix(got, tt.scope+":") {
				t.Errorf("key %q missing scope prefix", got)
			}
		})
	}
}
