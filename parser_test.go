package redisish

import (
	"strings"
	"sync"
	"testing"

	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Command
		wantErr error
	}{
		{"retrieve", "RETRIEVE\n", Retrieve{}, nil},
		{"retrieve with payload", "RETRIEVE extra\n", nil, ErrUnexpectedPayload},
		{"retrieve with trailing space", "RETRIEVE \n", nil, ErrUnexpectedPayload},
		{"retrieve with carriage return", "RETRIEVE\r\n", Retrieve{}, nil},
		{"publish", "PUBLISH hello world\n", Publish{Payload: "hello world"}, nil},
		{"publish keeps inner spacing", "PUBLISH  a  b   c \n", Publish{Payload: "a  b   c"}, nil},
		{"publish with carriage return", "PUBLISH hi\r\n", Publish{Payload: "hi"}, nil},
		{"publish with tab in verb", "PUBLISH\t\n", nil, ErrMissingPayload},
		{"publish without payload", "PUBLISH\n", nil, ErrMissingPayload},
		{"publish with empty payload", "PUBLISH \n", Publish{Payload: ""}, nil},
		{"publish with blank payload", "PUBLISH    \n", Publish{Payload: ""}, nil},
		{"blank line", "\n", nil, ErrEmptyMessage},
		{"space line", " \n", nil, ErrEmptyMessage},
		{"leading space before verb", " RETRIEVE\n", nil, ErrEmptyMessage},
		{"tab line", "\t\n", nil, ErrEmptyMessage},
		{"unknown verb", "FOO\n", nil, ErrUnknownVerb},
		{"verbs are case sensitive", "retrieve\n", nil, ErrUnknownVerb},
		{"unknown verb with payload", "GET key\n", nil, ErrUnknownVerb},
		{"empty input", "", nil, ErrIncompleteMessage},
		{"no newline", "RETRIEVE", nil, ErrIncompleteMessage},
		{"no newline with payload", "PUBLISH hello", nil, ErrIncompleteMessage},
		{"only first line is read", "RETRIEVE\nPUBLISH x\n", Retrieve{}, nil},
		{"second line errors are ignored", "PUBLISH a\nFOO\n", Publish{Payload: "a"}, nil},
		{"non ascii payload", "PUBLISH héllo wörld\n", Publish{Payload: "héllo wörld"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Parse(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, cmd)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd)
		})
	}
}

func TestParseErrorCodes(t *testing.T) {
	cases := map[string]errorcode.ErrorCode{
		"\n":           errorcode.EmptyMessage,
		"NOPE\n":       errorcode.UnknownVerb,
		"PUBLISH\n":    errorcode.MissingPayload,
		"RETRIEVE x\n": errorcode.UnexpectedPayload,
		"PUBLISH x":    errorcode.IncompleteMessage,
	}

	for input, want := range cases {
		_, err := Parse(input)
		assert.Equal(t, want, errorcode.CodeOf(err), "input %q", input)
	}
}

func TestParseIncompleteForAnyInputWithoutNewline(t *testing.T) {
	inputs := []string{"", " ", "PUBLISH", "PUBLISH ", "RETRIEVE", "RETRIEVE x", "FOO", "\r", strings.Repeat("x", 10000)}

	for _, input := range inputs {
		_, err := Parse(input)
		assert.True(t, IsIncomplete(err), "input %q", input)
	}
}

func TestIsIncompleteOnlyMatchesIncomplete(t *testing.T) {
	for _, err := range []error{ErrEmptyMessage, ErrUnknownVerb, ErrMissingPayload, ErrUnexpectedPayload, nil} {
		assert.False(t, IsIncomplete(err))
	}
	assert.True(t, IsIncomplete(ErrIncompleteMessage))
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{"PUBLISH hello world\n", "RETRIEVE\n", "FOO\n", "PUBLISH\n"}

	for _, input := range inputs {
		firstCmd, firstErr := Parse(input)
		for i := 0; i < 3; i++ {
			cmd, err := Parse(input)
			assert.Equal(t, firstCmd, cmd)
			assert.Equal(t, firstErr, err)
		}
	}
}

func TestParseIgnoresContentAfterFirstNewline(t *testing.T) {
	a, errA := Parse("PUBLISH same\n")
	b, errB := Parse("PUBLISH same\nRETRIEVE\ngarbage")

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cmd, err := Parse("PUBLISH concurrent\n")
				assert.NoError(t, err)
				assert.Equal(t, Publish{Payload: "concurrent"}, cmd)
			}
		}()
	}
	wg.Wait()
}

func TestParseBytes(t *testing.T) {
	cmd, err := ParseBytes([]byte("PUBLISH bytes\n"))
	require.NoError(t, err)
	assert.Equal(t, Publish{Payload: "bytes"}, cmd)
}

func TestDefaultParser(t *testing.T) {
	cmd, err := DefaultParser.ParseMessage("RETRIEVE\n")
	require.NoError(t, err)
	assert.Equal(t, Retrieve{}, cmd)
}

func TestCommandStringRoundTrips(t *testing.T) {
	for _, cmd := range []Command{Retrieve{}, Publish{Payload: "hello world"}} {
		parsed, err := Parse(cmd.String())
		require.NoError(t, err)
		assert.Equal(t, cmd, parsed)
		assert.Equal(t, cmd.Verb(), parsed.Verb())
	}
}
