package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links := ExtractLinks([]byte("See [the course](/elevation/berlin) for details."))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "/elevation/berlin", links[0].Destination)
	require.Equal(t, "the course", links[0].Text)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links := ExtractLinks([]byte("![Profile](profile.png)"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
	require.Equal(t, "profile.png", links[0].Destination)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links := ExtractLinks([]byte("<https://example.com/races>"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/races", links[0].Destination)
}

func TestLink_InternalPath(t *testing.T) {
	opts := Options{SiteURL: "https://example.com"}
	tests := []struct {
		dest string
		want string
		ok   bool
	}{
		{"/races/berlin", "/races/berlin", true},
		{"/races/berlin/", "/races/berlin", true},
		{"/races/berlin?x=1#top", "/races/berlin", true},
		{"https://example.com/fuel/marathon", "/fuel/marathon", true},
		{"https://EXAMPLE.com/", "/", true},
		{"https://other.org/fuel", "", false},
		{"relative/page", "", false},
		{"#faq", "", false},
		{"mailto:hi@example.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, ok := Link{Destination: tt.dest}.InternalPath(opts)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInternalPaths_SkipsImagesAndExternal(t *testing.T) {
	src := "Check [pace](/calculator/marathon/sub-3), ![img](/images/x.png) and [wiki](https://en.wikipedia.org/wiki/Marathon)."
	assert.Equal(t, []string{"/calculator/marathon/sub-3"}, InternalPaths(src, Options{}))
	assert.Nil(t, InternalPaths("no links here", Options{}))
}

func TestPlainText(t *testing.T) {
	src := "Run **faster** with [our calculator](/calculator).\n\nSecond line\nwraps here."
	assert.Equal(t, "Run faster with our calculator. Second line wraps here.", PlainText(src))
	assert.Equal(t, "", PlainText(""))
}
