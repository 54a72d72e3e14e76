package a2id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		isSelector bool
		wantErr    bool
		wantType   Type
		wantOpts   int
		wantSig    bool
	}{
		{name: "generic", in: "alice@example.org", wantType: Generic},
		{name: "generic with option", in: "alice+work@example.org", wantType: Generic, wantOpts: 1},
		{name: "generic with two options", in: "alice+work+urgent@example.org", wantType: Generic, wantOpts: 2},
		{name: "service", in: "+mta@example.org", wantType: Service},
		{name: "service with option", in: "+mta+relay@example.org", wantType: Service, wantOpts: 1},
		{name: "domain only", in: "@example.org", wantType: DomainOnly},
		{name: "signature flags", in: "alice+work+sig+@example.org", wantType: Generic, wantOpts: 1, wantSig: true},
		{name: "bare signature flags", in: "alice++@example.org", wantType: Generic, wantSig: true},
		{name: "subdomain", in: "alice@sub.example.org", wantType: Generic},

		{name: "empty string not a selector", in: "", wantErr: true},
		{name: "missing domain", in: "alice", wantErr: true},
		{name: "double at", in: "alice@@example.org", wantErr: true},
		{name: "space in domain", in: "alice@exa mple.org", wantErr: true},

		{name: "selector universal", in: "@.", isSelector: true, wantType: DomainOnly},
		{name: "selector bare at", in: "@", isSelector: true, wantType: DomainOnly},
		{name: "selector service no basename", in: "+@", isSelector: true, wantType: Service},
		{name: "selector service no basename with dot", in: "+@.", isSelector: true, wantType: Service},
		{name: "selector double plus", in: "++@", isSelector: true, wantType: Service, wantOpts: 1},
		{name: "selector leading dot domain", in: "alice@.example.org", isSelector: true, wantType: Generic},
		{name: "selector trailing dot domain", in: "alice@example.org.", isSelector: true, wantType: Generic},

		{name: "plain parse rejects bare at", in: "@", isSelector: false, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.in, tc.isSelector)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, id.Type())
			assert.Equal(t, tc.wantOpts, id.NrOpts())
			assert.Equal(t, tc.wantSig, id.HasSignature())
		})
	}
}

func TestParseTooLong(t *testing.T) {
	huge := make([]byte, MaxLen+1)
	for i := range huge {
		huge[i] = 'a'
	}
	_, err := Parse(string(huge), false)
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestParseErrorOffset(t *testing.T) {
	_, err := Parse("alice@exa mple.org", false)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 9, perr.Offset)
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"alice@example.org",
		"alice+work@example.org",
		"+mta@example.org",
		"@example.org",
		"alice+work+sig+@example.org",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			id, err := Parse(in, false)
			require.NoError(t, err)
			assert.Equal(t, in, id.String())
		})
	}
}
