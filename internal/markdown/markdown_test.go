// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML_Basics(t *testing.T) {
	out, err := ToHTML("# Deployment to Qatar\n\nWe sent **40** workers.")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="deployment-to-qatar">Deployment to Qatar</h1>`)
	assert.Contains(t, out, "<strong>40</strong>")
}

func TestToHTML_Tables(t *testing.T) {
	out, err := ToHTML("| Country | Jobs |\n|---|---|\n| Japan | 12 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Japan</td>")
}

func TestToHTML_StripsScripts(t *testing.T) {
	out, err := ToHTML("hello <script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestToHTML_LinksNoFollow(t *testing.T) {
	out, err := ToHTML("[site](https://example.com)")
	require.NoError(t, err)
	assert.Contains(t, out, `rel="nofollow"`)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "<p>ok</p>", Sanitize(`<p onclick="x()">ok</p>`))
}
