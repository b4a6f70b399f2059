package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAcceptsNoArguments(t *testing.T) {
	require.NoError(t, Parse(nil))
	require.NoError(t, Parse([]string{}))
}

func TestParseRejectsArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "flag", args: []string{"--help"}, wantErr: "unexpected argument: --help"},
		{name: "word", args: []string{"toggle"}, wantErr: "unexpected argument: toggle"},
		{name: "several", args: []string{"--config", "x.toml"}, wantErr: "unexpected arguments: --config x.toml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, Parse(tc.args), tc.wantErr)
		})
	}
}

func TestHelpTextMentionsBinaryAndKey(t *testing.T) {
	text := HelpText("voice-ptt")
	require.Contains(t, text, "Usage:\n  voice-ptt\n")
	require.Contains(t, text, "OPENAI_API_KEY")
	require.Contains(t, text, "config.toml")
}
