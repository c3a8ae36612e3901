package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/mrcacomacaco/zodkit-sub002/internal/ui/output"
)

func TestProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Profile())
	assert.Equal(t, termenv.Ascii, output.ProfileANSI())
}

func TestProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ProfileANSI())
}

func TestNew_WritesThrough(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, err := out.WriteString("scan complete")
	assert.NoError(t, err)
	assert.Equal(t, "scan complete", buf.String())
}

func TestNew_NilWriterDefaultsToStderr(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotNil(t, output.New(nil))
		assert.NotNil(t, output.NewANSI(nil))
	})
}
