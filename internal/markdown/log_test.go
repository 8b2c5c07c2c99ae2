package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderLog(t *testing.T) {
	out, err := RenderLog("# Summary\n\nFixes the frobnicator.\n\n- one\n- two")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Summary</h1>")
	require.Contains(t, out, "<p>Fixes the frobnicator.</p>")
	require.Contains(t, out, "<li>one</li>")
}

func TestRenderLogSuppressesRawHTML(t *testing.T) {
	out, err := RenderLog("before <script>alert(1)</script> after")
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}

func TestRenderLogEmptyMessage(t *testing.T) {
	out, err := RenderLog("")
	require.NoError(t, err)
	require.Empty(t, out)
}
