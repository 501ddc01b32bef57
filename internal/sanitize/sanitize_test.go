package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	t.Run("strips script tags", func(t *testing.T) {
		out := Full(`<p>hello</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>hello</p>", out)
	})

	t.Run("keeps allowed formatting", func(t *testing.T) {
		in := `<b>bold</b> <i>italic</i> <ul><li>item</li></ul>`
		assert.Equal(t, in, Full(in))
	})

	t.Run("drops event handler attributes", func(t *testing.T) {
		out := Full(`<p onclick="alert(1)">hi</p>`)
		assert.Equal(t, "<p>hi</p>", out)
	})

	t.Run("keeps img with src and dimensions", func(t *testing.T) {
		in := `<img src="https://example.com/a.webp" alt="a" width="10" height="10">`
		out := Full(in)
		assert.Contains(t, out, `src="https://example.com/a.webp"`)
		assert.Contains(t, out, `width="10"`)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := `<p onclick="x">a</p><a href="https://example.com">link</a><script>bad()</script>`
		once := Full(in)
		assert.Equal(t, once, Full(once))
	})

	t.Run("javascript scheme removed", func(t *testing.T) {
		out := Full(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, out, "javascript")
	})
}

func TestStrict(t *testing.T) {
	assert.Equal(t, "plain", Strict(`<b>plain</b>`))
	assert.Equal(t, "ab", Strict(`a<img src="x">b`))
}

func TestVisibleLength(t *testing.T) {
	t.Run("tags are invisible", func(t *testing.T) {
		assert.Equal(t, 5, VisibleLength("<p><b>hello</b></p>"))
	})

	t.Run("entities count as one rune", func(t *testing.T) {
		assert.Equal(t, 3, VisibleLength("a&amp;b"))
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		assert.Equal(t, 2, VisibleLength("  <p>  hi  </p>  "))
	})

	t.Run("markup alone is empty", func(t *testing.T) {
		assert.Equal(t, 0, VisibleLength("<p><br></p>"))
	})

	t.Run("multibyte runes count once", func(t *testing.T) {
		assert.Equal(t, 2, VisibleLength("日本"))
	})

	t.Run("heavy markup does not inflate length", func(t *testing.T) {
		// 400 visible chars wrapped in over 500 bytes of markup
		body := "<p><b>" + strings.Repeat("x", 400) + "</b></p>" + strings.Repeat("<br>", 200)
		assert.Equal(t, 400, VisibleLength(body))
	})
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "SciFi", NormalizeCategory("Sci Fi"))
	assert.Equal(t, "SciFi", NormalizeCategory("Sci_Fi"))
	assert.Equal(t, "SciFi", NormalizeCategory(" S c i F i "))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Sci Fi", CategoryLabel("SciFi"))
	assert.Equal(t, "News", CategoryLabel("News"))
	assert.Equal(t, "Ancient History Daily", CategoryLabel("AncientHistoryDaily"))
}

func TestValidateCategory(t *testing.T) {
	t.Run("normalizes before storing", func(t *testing.T) {
		got, err := ValidateCategory("Sci Fi")
		require.NoError(t, err)
		assert.Equal(t, "SciFi", got)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ValidateCategory("   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ThreadCategory")
	})

	t.Run("rejects special characters", func(t *testing.T) {
		_, err := ValidateCategory("Sci/Fi")
		assert.Error(t, err)
	})

	t.Run("rejects over 50 chars", func(t *testing.T) {
		_, err := ValidateCategory(strings.Repeat("a", 51))
		assert.Error(t, err)
	})

	t.Run("allows digits and dashes", func(t *testing.T) {
		got, err := ValidateCategory("Top-10")
		require.NoError(t, err)
		assert.Equal(t, "Top-10", got)
	})
}

func TestValidateHashtags(t *testing.T) {
	t.Run("valid set", func(t *testing.T) {
		assert.NoError(t, ValidateHashtags([]string{"#Ok123", "#golang"}))
	})

	t.Run("missing hash prefix", func(t *testing.T) {
		err := ValidateHashtags([]string{"#ok", "bad tag"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start with #")
	})

	t.Run("empty list is fine", func(t *testing.T) {
		assert.NoError(t, ValidateHashtags(nil))
	})

	t.Run("more than ten rejected", func(t *testing.T) {
		tags := make([]string, 11)
		for i := range tags {
			tags[i] = "#a"
		}
		assert.Error(t, ValidateHashtags(tags))
	})

	t.Run("thirty chars total is the cap", func(t *testing.T) {
		assert.NoError(t, ValidateHashtags([]string{"#" + strings.Repeat("a", 29)}))
		assert.Error(t, ValidateHashtags([]string{"#" + strings.Repeat("a", 30)}))
	})
}

func TestValidateImageFilename(t *testing.T) {
	t.Run("empty means no image", func(t *testing.T) {
		assert.NoError(t, ValidateImageFilename(""))
	})

	t.Run("uuid webp accepted", func(t *testing.T) {
		assert.NoError(t, ValidateImageFilename("d741b779-9c57-472a-a983-5c1dcaef7426.webp"))
	})

	t.Run("uuid jpg accepted", func(t *testing.T) {
		assert.NoError(t, ValidateImageFilename("d741b779-9c57-472a-a983-5c1dcaef7426.jpg"))
	})

	t.Run("png rejected", func(t *testing.T) {
		assert.Error(t, ValidateImageFilename("d741b779-9c57-472a-a983-5c1dcaef7426.png"))
	})

	t.Run("non uuid stem rejected", func(t *testing.T) {
		assert.Error(t, ValidateImageFilename("../../etc/passwd.webp"))
	})
}
