package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"trunk/META.yml", Path{"", "trunk", "META.yml"}},
		{"/trunk/META.yml", Path{"", "trunk", "META.yml"}},
		{"branches/myproj-1/lib/", Path{"", "branches", "myproj-1", "lib", ""}},
		{"/", Path{"", ""}},
		{"", Path{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.in))
		})
	}
}

func TestPathIsDir(t *testing.T) {
	assert.False(t, SplitPath("trunk/META.yml").IsDir())
	assert.True(t, SplitPath("trunk/lib/").IsDir())
	assert.True(t, SplitPath("/").IsDir())
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "/trunk/META.yml", SplitPath("trunk/META.yml").String())
	assert.Equal(t, "/trunk/lib/", SplitPath("trunk/lib/").String())
}
