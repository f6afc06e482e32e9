package sound

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/ports"
)

func TestPlay_DisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := &Player{bell: &buf, enabled: false}

	require.NoError(t, p.Play(ports.CueAutoStop))
	assert.Empty(t, buf.String())
}

func TestTerminalBell(t *testing.T) {
	var buf bytes.Buffer
	p := &Player{bell: &buf, enabled: true}

	require.NoError(t, p.terminalBell())
	assert.Equal(t, "\a", buf.String())
}
