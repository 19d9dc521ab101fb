package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRTF = `{\rtf1\ansi{\stylesheet{\s0\snext0\nowidctlpar\hyphpar0 Normal;}{\s20\sbasedon0\snext20\f2\fs20 Preformatted Text;}}\pard\plain \s20\f2\fs20 Hello there.\par}`

func TestStyles(t *testing.T) {
	styles, err := Styles(sampleRTF)
	require.NoError(t, err)

	assert.Equal(t, `\s0\nowidctlpar\hyphpar0`, styles["Normal"])
	assert.Equal(t, `\s20\f2\fs20`, styles["Preformatted Text"])
	assert.Equal(t, styles["Normal"], styles["0"])
	assert.Equal(t, styles["Preformatted Text"], styles["20"])
}

func TestStyles_NoStylesheet(t *testing.T) {
	_, err := Styles(`{\rtf1 plain}`)
	assert.Error(t, err)
}

func TestReplaceStyle(t *testing.T) {
	out, err := ReplaceStyle(sampleRTF, "Preformatted Text", "Normal")
	require.NoError(t, err)

	assert.Contains(t, out, `\s0\nowidctlpar\hyphpar0 Hello there.`)
	assert.NotContains(t, out, `\s20\f2\fs20 Hello there.`)
}

func TestReplaceStyle_UnknownStyle(t *testing.T) {
	_, err := ReplaceStyle(sampleRTF, "Heading 1", "Normal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Heading 1")
}
