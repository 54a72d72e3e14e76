package acl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicyLine(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    PolicyLine
		wantErr bool
	}{
		{
			name: "minimal valid line",
			line: "@. a@b %B+",
			want: PolicyLine{RemoteSel: "@.", LocalID: "a@b", ACLRule: "%B+"},
		},
		{
			name: "realistic line",
			line: "@.example.org   alice@example.org   %W +mta",
			want: PolicyLine{RemoteSel: "@.example.org", LocalID: "alice@example.org", ACLRule: "%W +mta"},
		},
		{name: "too short overall", line: "@. a@b", wantErr: true},
		{name: "remote selector too short", line: "@ alice@b %B+", wantErr: true},
		{name: "local id too short", line: "@.zzz ab %B+", wantErr: true},
		{name: "acl rule too short", line: "@.abcdef a@b %B", wantErr: true},
		{name: "only whitespace", line: "                    ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePolicyLine(tc.line)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
